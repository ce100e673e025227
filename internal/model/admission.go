package model

import (
	"time"

	"github.com/google/uuid"
)

// IntakeStatus is shared by admissions and applications.
type IntakeStatus string

const (
	IntakePending  IntakeStatus = "pending"
	IntakeApproved IntakeStatus = "approved"
	IntakeRejected IntakeStatus = "rejected"
)

// StudyMode is how an admitted student intends to attend.
type StudyMode string

const (
	StudyModeOnline  StudyMode = "online"
	StudyModeOffline StudyMode = "offline"
	StudyModeHybrid  StudyMode = "hybrid"
)

// Admission is a prospective student's detailed admission form.
type Admission struct {
	ID            uuid.UUID    `json:"id"`
	FullName      string       `json:"full_name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	DOB           time.Time    `json:"dob"`
	Qualification string       `json:"qualification"`
	Institution   string       `json:"institution"`
	YearOfPassing int          `json:"year_of_passing"`
	Percentage    string       `json:"percentage"`
	CourseID      uuid.UUID    `json:"course_id"`
	CourseName    string       `json:"course_name,omitempty"`
	StudyMode     StudyMode    `json:"study_mode"`
	StartDate     time.Time    `json:"start_date"`
	Status        IntakeStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CreateAdmissionRequest is the public admission form payload.
type CreateAdmissionRequest struct {
	FullName      string    `json:"full_name" binding:"required,min=2,max=100"`
	Email         string    `json:"email" binding:"required,email,max=255"`
	Phone         string    `json:"phone" binding:"required,max=30"`
	DOB           time.Time `json:"dob" binding:"required"`
	Qualification string    `json:"qualification" binding:"required,max=255"`
	Institution   string    `json:"institution" binding:"required,max=255"`
	YearOfPassing int       `json:"year_of_passing" binding:"required,gte=1950,lte=2100"`
	Percentage    string    `json:"percentage" binding:"required,max=20"`
	CourseID      uuid.UUID `json:"course_id" binding:"required"`
	StudyMode     string    `json:"study_mode" binding:"omitempty,oneof=online offline hybrid"`
	StartDate     time.Time `json:"start_date" binding:"required"`
}

// UpdateAdmissionStatusRequest approves or rejects a pending admission.
type UpdateAdmissionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
