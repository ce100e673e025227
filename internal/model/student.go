package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus tracks a student's standing in one course.
type EnrollmentStatus string

const (
	EnrollmentOngoing   EnrollmentStatus = "ongoing"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Student is the central aggregate: a person identified by a permanent
// registration number, optionally owned by a franchise and optionally
// linked to a self-service login account.
type Student struct {
	ID                 uuid.UUID  `json:"id"`
	RegistrationNumber string     `json:"registration_number"`
	Name               string     `json:"name"`
	Email              string     `json:"email,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Year               int        `json:"year,omitempty"`
	EnrollmentDate     time.Time  `json:"enrollment_date"`
	FranchiseeID       *uuid.UUID `json:"franchisee_id,omitempty"`
	UserID             *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Populated on detail reads.
	Enrollments []Enrollment `json:"enrollments,omitempty"`
	ExamRecords []ExamRecord `json:"exam_records,omitempty"`
	Documents   []string     `json:"documents,omitempty"`
}

// Certificate is the issuance record attached to a completed enrollment.
type Certificate struct {
	File      string    `json:"file"`
	Number    string    `json:"number"`
	IssueDate time.Time `json:"issue_date"`
}

// Enrollment is a student's relationship to one course. At most one
// enrollment exists per (student, course) pair.
type Enrollment struct {
	ID             uuid.UUID        `json:"id"`
	StudentID      uuid.UUID        `json:"student_id"`
	CourseID       uuid.UUID        `json:"course_id"`
	CourseName     string           `json:"course_name,omitempty"`
	CourseType     string           `json:"course_type,omitempty"`
	EnrollmentDate time.Time        `json:"enrollment_date"`
	Progress       int              `json:"progress"`
	Status         EnrollmentStatus `json:"status"`
	CompletedDate  *time.Time       `json:"completed_date,omitempty"`
	Certificate    *Certificate     `json:"certificate,omitempty"`
}

// ExamRecord is a student's per-exam result row. At most one record exists
// per (student, exam) pair; marks stay nil until results are published.
type ExamRecord struct {
	ID            uuid.UUID  `json:"id"`
	StudentID     uuid.UUID  `json:"student_id"`
	ExamID        uuid.UUID  `json:"exam_id"`
	CourseID      uuid.UUID  `json:"course_id"`
	Marks         *int       `json:"marks,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
}

// CreateStudentRequest is the payload for registering a new student.
// Franchisee actors always own the students they create; admins may assign
// any franchise (or none, for online students).
type CreateStudentRequest struct {
	Name         string     `json:"name" binding:"required,min=2,max=100"`
	Email        string     `json:"email" binding:"omitempty,email,max=255"`
	Phone        string     `json:"phone" binding:"omitempty,max=30"`
	CourseID     *uuid.UUID `json:"course_id" binding:"omitempty"`
	Year         int        `json:"year" binding:"omitempty,gte=2000,lte=2100"`
	FranchiseeID *uuid.UUID `json:"franchisee_id" binding:"omitempty"`
}

// UpdateStudentRequest is the payload for updating a student's profile.
type UpdateStudentRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
	Year  int    `json:"year" binding:"omitempty,gte=2000,lte=2100"`
}

// UpdatePortalProfileRequest is the self-service profile update payload.
// Students may change contact details only.
type UpdatePortalProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

// EnrollExistingRequest is the payload for enrolling a student in an
// additional course.
type EnrollExistingRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	CourseID  uuid.UUID `json:"course_id" binding:"required"`
}

// UpdateProgressRequest sets the completion percentage of one enrollment.
type UpdateProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// VerifyCertificateRequest is the public verification payload. The field is
// named registration_number for compatibility with existing clients but
// carries the certificate number.
type VerifyCertificateRequest struct {
	RegistrationNumber string `json:"registration_number" binding:"required,min=4,max=100"`
}

// CertificateDetails is the public view of a verified certificate.
type CertificateDetails struct {
	StudentName        string    `json:"student_name"`
	RegistrationNumber string    `json:"registration_number"`
	CourseName         string    `json:"course_name"`
	CertificateNumber  string    `json:"certificate_number"`
	IssueDate          time.Time `json:"issue_date"`
}

// VerifyCertificateResponse reveals nothing beyond validity unless the
// certificate matches.
type VerifyCertificateResponse struct {
	Valid   bool                `json:"valid"`
	Details *CertificateDetails `json:"details,omitempty"`
}

// StudentAccessRequest is the public lookup payload for the legacy
// registration-number portal entry.
type StudentAccessRequest struct {
	RegistrationNumber string `json:"registration_number" binding:"required,min=4,max=50"`
}
