package model

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a public contact-form submission.
type Inquiry struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CourseInterest string    `json:"course_interest,omitempty"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateInquiryRequest is the public inquiry form payload.
type CreateInquiryRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"omitempty,email,max=255"`
	Phone          string `json:"phone" binding:"omitempty,max=30"`
	CourseInterest string `json:"course_interest" binding:"omitempty,max=255"`
	Message        string `json:"message" binding:"omitempty,max=2000"`
}
