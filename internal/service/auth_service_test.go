package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/config"
	"github.com/vesdm/institute-backend/internal/model"
)

func testAuthService(secret string, expiry time.Duration) *AuthService {
	cfg := &config.Config{JWTSecret: secret, JWTExpiry: expiry, BcryptCost: 4}
	return NewAuthService(cfg, nil)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testAuthService("test-secret", time.Hour)
	user := &model.User{ID: uuid.New(), Role: model.RoleFranchisee}

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Role != model.RoleFranchisee {
		t.Errorf("Role = %v, want franchisee", claims.Role)
	}

	actor := claims.Actor()
	if actor.ID != user.ID || actor.Role != model.RoleFranchisee {
		t.Errorf("Actor() = %+v", actor)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := testAuthService("test-secret", -time.Hour)
	token, err := svc.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testAuthService("secret-a", time.Hour).GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := testAuthService("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	svc := testAuthService("test-secret", time.Hour)

	hash, err := svc.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := svc.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword with correct password = %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword with wrong password = %v, want ErrInvalidCredentials", err)
	}
}
