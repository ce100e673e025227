package model

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the actor class of a user account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFranchisee Role = "franchisee"
	RoleStudent    Role = "student"
)

// User represents a login account (admin, franchisee or student).
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SetupRequest is the payload for the one-time initial admin setup.
type SetupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

// CreateFranchiseeRequest is the payload for creating a franchisee account.
type CreateFranchiseeRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}
