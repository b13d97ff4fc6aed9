package router

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"biblioteca/internal/auth"
	"biblioteca/internal/config"
	"biblioteca/internal/errors"
	"biblioteca/internal/handler"
	"biblioteca/internal/middleware"
	"biblioteca/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	conceptHandler *handler.ConceptHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/concepts", conceptHandler.ListConcepts)
	api.GET("/concepts/search", conceptHandler.SearchConcepts)
	api.GET("/concepts/category/:category", conceptHandler.ConceptsByCategory)
	api.GET("/concepts/:id", conceptHandler.GetConcept)
	api.GET("/categories", categoryHandler.ListCategories)

	// Secured routes: verified token plus a live actor lookup.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				if stderrors.Is(err, echojwt.ErrJWTMissing) {
					return errors.ErrUnauthorized
				}
				return errors.ErrInvalidToken
			},
		}),
		middleware.LoadActor(tokenStore, userRepo),
	)

	secured.GET("/auth/profile", authHandler.Profile)
	secured.POST("/auth/logout", authHandler.Logout)

	secured.POST("/concepts", conceptHandler.CreateConcept)
	secured.PUT("/concepts/:id", conceptHandler.UpdateConcept)
	secured.DELETE("/concepts/:id", conceptHandler.DeleteConcept)

	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)

	// Admin-only surface
	secured.GET("/users", userHandler.ListUsers, middleware.RequireAdmin)
	secured.DELETE("/users/:id", userHandler.DeleteUser, middleware.RequireAdmin)
	secured.POST("/categories", categoryHandler.CreateCategory, middleware.RequireAdmin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler is the single place where error kinds become status codes and
// the response envelope. Handlers and services return typed errors only.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var message, code string

	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		status = he.Code
		message = fmt.Sprintf("%v", he.Message)
		code = codeForStatus(status)
	} else {
		mapped := errors.MapErrorToHTTP(err)
		status = mapped.StatusCode
		message = mapped.Message
		code = mapped.Code
	}

	_ = c.JSON(status, handler.Response{
		Success: false,
		Message: message,
		Error:   code,
	})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}
