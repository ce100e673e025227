// Package authz centralizes role and ownership decisions. Every mutating
// operation consults Can* with freshly loaded ownership data; nothing here
// caches, so reassigning a student between franchises takes effect on the
// next call.
package authz

import (
	"errors"

	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/model"
)

// Policy errors.
var (
	ErrAdminOnly = errors.New("administrator access required")
	ErrForbidden = errors.New("access denied")
	ErrNotOwner  = errors.New("record belongs to another franchise")
)

// Actor is the immutable request identity extracted from the bearer token.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// RequireAdmin allows only admins.
func RequireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// RequireStaff allows admins and franchisees.
func RequireStaff(actor Actor) error {
	if actor.Role == model.RoleAdmin || actor.Role == model.RoleFranchisee {
		return nil
	}
	return ErrForbidden
}

// CanAccessStudent decides whether the actor may read or mutate the given
// student. Admins always may; franchisees only when the student's franchise
// is theirs; student actors only their own linked record.
func CanAccessStudent(actor Actor, student *model.Student) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleFranchisee:
		if student.FranchiseeID == nil || *student.FranchiseeID != actor.ID {
			return ErrNotOwner
		}
		return nil
	case model.RoleStudent:
		if student.UserID == nil || *student.UserID != actor.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// CanPublishResults decides whether the actor may publish exam results.
// Exams are created by admins only, so publication is admin-only as well;
// there is no per-franchise exam ownership to key off.
func CanPublishResults(actor Actor, exam *model.Exam) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
