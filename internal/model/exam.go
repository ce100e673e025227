package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamState is the derived lifecycle state of an exam. Only is_published is
// stored; Open vs Closed is computed from the registration deadline.
type ExamState string

const (
	ExamStateOpen      ExamState = "OPEN"
	ExamStateClosed    ExamState = "CLOSED"
	ExamStatePublished ExamState = "PUBLISHED"
)

// Exam represents a scheduled examination for one course.
type Exam struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Subject         string     `json:"subject,omitempty"`
	Date            time.Time  `json:"date"`
	Deadline        time.Time  `json:"deadline"`
	StartTime       string     `json:"time,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalMarks      int        `json:"total_marks"`
	PassingMarks    int        `json:"passing_marks"`
	CourseID        uuid.UUID  `json:"course_id"`
	CourseName      string     `json:"course_name,omitempty"`
	CourseType      string     `json:"course_type,omitempty"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	CreatedByRole   Role       `json:"created_by_role"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// State derives the lifecycle state at the given instant. Transitions are
// monotonic: an exam never reopens and never unpublishes.
func (e *Exam) State(now time.Time) ExamState {
	if e.IsPublished {
		return ExamStatePublished
	}
	if now.After(e.Deadline) {
		return ExamStateClosed
	}
	return ExamStateOpen
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Name            string    `json:"name" binding:"required,min=2,max=255"`
	Subject         string    `json:"subject" binding:"omitempty,max=255"`
	Date            time.Time `json:"date" binding:"required"`
	Deadline        time.Time `json:"deadline" binding:"required"`
	StartTime       string    `json:"time" binding:"required,max=20"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=600"`
	TotalMarks      int       `json:"total_marks" binding:"required,min=1"`
	PassingMarks    int       `json:"passing_marks" binding:"required,min=0"`
	CourseID        uuid.UUID `json:"course_id" binding:"required"`
}

// RegisterStudentsRequest is the payload for adding students to an exam roster.
type RegisterStudentsRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" binding:"required,min=1,dive,required"`
}

// RegistrationOutcome reports what happened to one roster entry.
type RegistrationOutcome string

const (
	RegistrationAdded             RegistrationOutcome = "added"
	RegistrationAlreadyRegistered RegistrationOutcome = "already_registered"
	RegistrationUnknownStudent    RegistrationOutcome = "unknown_student"
)

// RegistrationResult is the per-item outcome of a roster registration.
type RegistrationResult struct {
	StudentID uuid.UUID           `json:"student_id"`
	Outcome   RegistrationOutcome `json:"outcome"`
}

// RegistrationStatus partitions a franchise's students by roster membership.
type RegistrationStatus struct {
	Registered []RosterStudent `json:"registered"`
	Available  []RosterStudent `json:"available"`
}

// RosterStudent is the reduced student view used in roster listings.
type RosterStudent struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	FranchiseeName     string    `json:"franchisee_name,omitempty"`
}

// PublishResultsRequest is the payload for bulk result publication.
type PublishResultsRequest struct {
	Results []StudentMarks `json:"results" binding:"required,min=1,dive"`
}

// StudentMarks is one entry of a bulk publication.
type StudentMarks struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Marks     int       `json:"marks"`
}

// PublishOutcome reports what happened to one publication entry.
type PublishOutcome string

const (
	PublishApplied        PublishOutcome = "applied"
	PublishInvalidMarks   PublishOutcome = "invalid_marks"
	PublishUnknownStudent PublishOutcome = "unknown_student"
)

// PublishResult is the per-item outcome of a bulk publication.
type PublishResult struct {
	StudentID uuid.UUID      `json:"student_id"`
	Outcome   PublishOutcome `json:"outcome"`
	Grade     string         `json:"grade,omitempty"`
}

// StudentExamResult is a published result joined with its exam, as shown in
// the student portal.
type StudentExamResult struct {
	ExamID        uuid.UUID `json:"exam_id"`
	ExamName      string    `json:"exam_name"`
	Subject       string    `json:"subject"`
	Marks         int       `json:"marks"`
	TotalMarks    int       `json:"total_marks"`
	Grade         string    `json:"grade"`
	PublishedDate time.Time `json:"published_date"`
	CourseName    string    `json:"course_name"`
}
