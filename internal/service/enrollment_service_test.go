package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
)

// IssueCertificate is a staff operation, not admin-only: franchisees issue
// for their own students. The role gate must reject students and nothing
// stricter.
func TestIssueCertificateRoleGate(t *testing.T) {
	svc := NewEnrollmentService(nil, nil, nil, nil, zerolog.Nop())
	studentActor := authz.Actor{ID: uuid.New(), Role: model.RoleStudent}

	_, err := svc.IssueCertificate(context.Background(), studentActor, uuid.New(), uuid.New(), "/uploads/cert.pdf")
	if !errors.Is(err, authz.ErrForbidden) {
		t.Errorf("student actor: err = %v, want ErrForbidden", err)
	}
	if errors.Is(err, authz.ErrAdminOnly) {
		t.Error("student actor rejected with ErrAdminOnly; franchisees must pass the gate")
	}
}

func TestCertificateNumber(t *testing.T) {
	courseID := uuid.MustParse("abcd1234-0000-0000-0000-000000000000")

	number := CertificateNumber("VESDM202600042", courseID)

	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 dash-separated parts, got %q", number)
	}
	if parts[0] != "VESDM202600042" {
		t.Errorf("registration part = %q", parts[0])
	}
	if parts[1] != "ABCD" {
		t.Errorf("course part = %q, want ABCD", parts[1])
	}
	if len(parts[2]) != 4 {
		t.Errorf("random suffix = %q, want 4 digits", parts[2])
	}
	for _, r := range parts[2] {
		if r < '0' || r > '9' {
			t.Errorf("suffix contains non-digit %q in %q", r, number)
		}
	}
	if number != strings.ToUpper(number) {
		t.Errorf("certificate number not uppercased: %q", number)
	}
}

func TestNormalizeCertificateNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"vesdm202600042-abcd-0042", "VESDM202600042-ABCD-0042"},
		{"  VESDM202600042-ABCD-0042  ", "VESDM202600042-ABCD-0042"},
		{"VESDM202600042-ABCD-0042", "VESDM202600042-ABCD-0042"},
	}
	for _, tc := range cases {
		if got := NormalizeCertificateNumber(tc.in); got != tc.want {
			t.Errorf("NormalizeCertificateNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
