package entity

import "github.com/google/uuid"

// Actor is the authenticated caller of a usecase operation.
// Handlers build it from the verified token and pass it explicitly.
type Actor struct {
	UserID uuid.UUID
	Role   RoleKind
}

// Is reports whether the actor holds any of the given roles
func (a Actor) Is(roles ...RoleKind) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
