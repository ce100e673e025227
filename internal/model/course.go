package model

import (
	"time"

	"github.com/google/uuid"
)

// Course is a catalog entry referenced by enrollments, exams and resources.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Fee         float64   `json:"fee"`
	Eligibility string    `json:"eligibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Type        string  `json:"type" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Duration    string  `json:"duration" binding:"omitempty,max=100"`
	Fee         float64 `json:"fee" binding:"omitempty,gte=0"`
	Eligibility string  `json:"eligibility" binding:"omitempty,max=500"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=2,max=255"`
	Type        string   `json:"type" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Duration    *string  `json:"duration" binding:"omitempty,max=100"`
	Fee         *float64 `json:"fee" binding:"omitempty,gte=0"`
	Eligibility *string  `json:"eligibility" binding:"omitempty,max=500"`
}
