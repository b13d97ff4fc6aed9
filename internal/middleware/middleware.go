// Package middleware carries the request guards that sit between the router
// and the handlers: actor loading for authenticated routes and the admin gate.
package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"biblioteca/internal/auth"
	"biblioteca/internal/errors"
	"biblioteca/internal/policy"
	"biblioteca/internal/repository"
)

// ContextActorKey is where the loaded actor lives in the echo context.
const ContextActorKey = "actor"

// ActorFromContext returns the actor for the request, or an anonymous one
// on routes without the auth chain.
func ActorFromContext(c echo.Context) policy.Actor {
	if actor, ok := c.Get(ContextActorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Anonymous()
}

// LoadActor runs after the JWT middleware. It rejects revoked tokens and
// re-reads the user so a deactivated account or a role change takes effect
// immediately, then exposes the actor to handlers.
func LoadActor(tokenStore auth.TokenStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return errors.ErrUnauthorized
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return errors.ErrInvalidToken
			}

			if claims.ID != "" {
				if revoked, _ := tokenStore.IsBlacklisted(c.Request().Context(), claims.ID); revoked {
					return errors.ErrInvalidToken
				}
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return errors.ErrInvalidToken
			}

			c.Set(ContextActorKey, policy.Actor{
				ID:            user.ID,
				Role:          user.Role,
				Authenticated: true,
			})
			return next(c)
		}
	}
}

// RequireAdmin gates a route group to admin actors.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !policy.IsAdmin(ActorFromContext(c)) {
			return errors.ErrForbidden
		}
		return next(c)
	}
}
