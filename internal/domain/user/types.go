package user

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	// RoleSystem is never issued to callers; the engine uses it for compensation and sweeps.
	RoleSystem Role = "system"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// NewRole parses a role claimed by an identity token. The system role cannot be claimed.
func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() || role == RoleSystem {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is the authenticated principal on whose behalf a lifecycle call runs.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: RoleSystem}
}

func (a Actor) IsSystem() bool { return a.Role == RoleSystem }
func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a Actor) IsOwner() bool  { return a.Role == RoleOwner }

// Privileged actors may act on bookings they do not own.
func (a Actor) IsPrivileged() bool {
	return a.IsSystem() || a.IsAdmin()
}
