// Package policy centralizes every authorization decision. Decisions are pure
// functions over an actor and a target: no I/O, no side effects. Callers must
// not compare roles anywhere else.
package policy

import (
	"github.com/google/uuid"

	"biblioteca/internal/model"
)

// Actor is the identity performing an operation. The zero value is an
// anonymous actor, which is denied everywhere.
type Actor struct {
	ID            uuid.UUID
	Role          model.Role
	Authenticated bool
}

// Anonymous returns an unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

func (a Actor) isAdmin() bool {
	return a.Authenticated && a.Role == model.RoleAdmin
}

func (a Actor) isSelf(userID uuid.UUID) bool {
	return a.Authenticated && a.ID == userID
}

// IsAdmin reports whether the actor holds the admin role. Route guards and
// error shaping use it; resource decisions go through the Can* functions.
func IsAdmin(a Actor) bool {
	return a.isAdmin()
}

// CanReadUser reports whether the actor may view the user record.
func CanReadUser(a Actor, userID uuid.UUID) bool {
	return a.isSelf(userID) || a.isAdmin()
}

// CanWriteUser reports whether the actor may update the user record. Role
// changes are additionally gated by CanChangeRole.
func CanWriteUser(a Actor, userID uuid.UUID) bool {
	return a.isSelf(userID) || a.isAdmin()
}

// CanChangeRole reports whether the actor may change a user's role. An admin
// changing their own role is allowed, matching the legacy behavior.
func CanChangeRole(a Actor) bool {
	return a.isAdmin()
}

// CanDeleteUser reports whether the actor may deactivate the user record.
// Self-deletion is forbidden regardless of role.
func CanDeleteUser(a Actor, userID uuid.UUID) bool {
	return a.isAdmin() && !a.isSelf(userID)
}

// CanWriteConcept reports whether the actor may update the concept.
func CanWriteConcept(a Actor, authorID uuid.UUID) bool {
	return a.isSelf(authorID) || a.isAdmin()
}

// CanDeleteConcept reports whether the actor may deactivate the concept.
func CanDeleteConcept(a Actor, authorID uuid.UUID) bool {
	return CanWriteConcept(a, authorID)
}
