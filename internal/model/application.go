package model

import (
	"time"

	"github.com/google/uuid"
)

// Application is a lightweight online enrollment application. Approval
// creates a Student with a fresh registration number and no franchise.
type Application struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	CourseID    uuid.UUID    `json:"course_id"`
	CourseName  string       `json:"course_name,omitempty"`
	Message     string       `json:"message,omitempty"`
	Documents   []string     `json:"documents,omitempty"`
	Status      IntakeStatus `json:"status"`
	AppliedDate time.Time    `json:"applied_date"`
}

// CreateApplicationRequest is the public application form payload
// (multipart; document files arrive as the "documents" form field).
type CreateApplicationRequest struct {
	Name     string    `form:"name" binding:"required,min=2,max=100"`
	Email    string    `form:"email" binding:"required,email,max=255"`
	Phone    string    `form:"phone" binding:"omitempty,max=30"`
	CourseID uuid.UUID `form:"course_id" binding:"required"`
	Message  string    `form:"message" binding:"omitempty,max=2000"`
}
