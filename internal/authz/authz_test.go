package authz

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/model"
)

func TestCanAccessStudent(t *testing.T) {
	franchiseeID := uuid.New()
	otherFranchiseeID := uuid.New()
	studentUserID := uuid.New()

	owned := &model.Student{FranchiseeID: &franchiseeID, UserID: &studentUserID}
	unowned := &model.Student{}

	cases := []struct {
		name    string
		actor   Actor
		student *model.Student
		wantErr error
	}{
		{"admin sees anything", Actor{ID: uuid.New(), Role: model.RoleAdmin}, owned, nil},
		{"franchisee sees own student", Actor{ID: franchiseeID, Role: model.RoleFranchisee}, owned, nil},
		{"franchisee blocked from other franchise", Actor{ID: otherFranchiseeID, Role: model.RoleFranchisee}, owned, ErrNotOwner},
		{"franchisee blocked from unassigned student", Actor{ID: franchiseeID, Role: model.RoleFranchisee}, unowned, ErrNotOwner},
		{"student sees own record", Actor{ID: studentUserID, Role: model.RoleStudent}, owned, nil},
		{"student blocked from others", Actor{ID: uuid.New(), Role: model.RoleStudent}, owned, ErrForbidden},
		{"student blocked from unlinked record", Actor{ID: studentUserID, Role: model.RoleStudent}, unowned, ErrForbidden},
		{"unknown role blocked", Actor{ID: uuid.New(), Role: "ghost"}, owned, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanAccessStudent(tc.actor, tc.student)
			if !errors.Is(err, tc.wantErr) && err != tc.wantErr {
				t.Errorf("CanAccessStudent() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCanPublishResults(t *testing.T) {
	exam := &model.Exam{}

	if err := CanPublishResults(Actor{Role: model.RoleAdmin}, exam); err != nil {
		t.Errorf("admin publish = %v, want nil", err)
	}
	if err := CanPublishResults(Actor{Role: model.RoleFranchisee}, exam); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("franchisee publish = %v, want ErrAdminOnly", err)
	}
	if err := CanPublishResults(Actor{Role: model.RoleStudent}, exam); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("student publish = %v, want ErrAdminOnly", err)
	}
}

func TestRequireStaff(t *testing.T) {
	if err := RequireStaff(Actor{Role: model.RoleAdmin}); err != nil {
		t.Errorf("admin = %v", err)
	}
	if err := RequireStaff(Actor{Role: model.RoleFranchisee}); err != nil {
		t.Errorf("franchisee = %v", err)
	}
	if err := RequireStaff(Actor{Role: model.RoleStudent}); !errors.Is(err, ErrForbidden) {
		t.Errorf("student = %v, want ErrForbidden", err)
	}
}
