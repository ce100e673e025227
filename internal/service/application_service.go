package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

var ErrApplicationNotPending = errors.New("application has already been reviewed")

// ApplicationService handles online applications. Approval converts an
// application into a real student record with a fresh registration number.
type ApplicationService struct {
	applicationRepo *repository.ApplicationRepository
	studentRepo     *repository.StudentRepository
	enrollmentRepo  *repository.EnrollmentRepository
	courseRepo      *repository.CourseRepository
	log             zerolog.Logger
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	applicationRepo *repository.ApplicationRepository,
	studentRepo *repository.StudentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		enrollmentRepo:  enrollmentRepo,
		courseRepo:      courseRepo,
		log:             log.With().Str("component", "application_service").Logger(),
	}
}

// Submit records a public online application as pending. Document URLs come
// from the upload step.
func (s *ApplicationService) Submit(ctx context.Context, req model.CreateApplicationRequest, documents []string) (*model.Application, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	application := &model.Application{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		CourseID:   req.CourseID,
		CourseName: course.Name,
		Message:    req.Message,
		Documents:  documents,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}
	s.log.Info().Str("application_id", application.ID.String()).Msg("Application submitted")
	return application, nil
}

// ListPending retrieves applications awaiting review. Admin only.
func (s *ApplicationService) ListPending(ctx context.Context, actor authz.Actor) ([]model.Application, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if applications == nil {
		applications = []model.Application{}
	}
	return applications, nil
}

// Approve turns a pending application into a student enrolled in the
// applied course. The student gets a fresh registration number and no
// franchise; online applicants belong to the institute directly.
func (s *ApplicationService) Approve(ctx context.Context, actor authz.Actor, id uuid.UUID) (*model.Student, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application.Status != model.IntakePending {
		return nil, ErrApplicationNotPending
	}

	seq, err := s.studentRepo.NextRegistrationSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("advance registration counter: %w", err)
	}

	year := time.Now().Year()
	student := &model.Student{
		RegistrationNumber: FormatRegistrationNumber(year, seq),
		Name:               application.Name,
		Email:              application.Email,
		Phone:              application.Phone,
		Year:               year,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{StudentID: student.ID, CourseID: application.CourseID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	student.Enrollments = []model.Enrollment{*enrollment}

	if len(application.Documents) > 0 {
		if err := s.studentRepo.AddDocuments(ctx, student.ID, application.Documents); err != nil {
			return nil, err
		}
		student.Documents = application.Documents
	}

	if _, err := s.applicationRepo.UpdateStatus(ctx, id, model.IntakeApproved); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("application_id", id.String()).
		Str("student_id", student.ID.String()).
		Str("registration_number", student.RegistrationNumber).
		Msg("Application approved")
	return student, nil
}

// Reject marks a pending application rejected. Admin only.
func (s *ApplicationService) Reject(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if application.Status != model.IntakePending {
		return ErrApplicationNotPending
	}
	affected, err := s.applicationRepo.UpdateStatus(ctx, id, model.IntakeRejected)
	if err != nil {
		return err
	}
	if affected == 0 {
		return pgx.ErrNoRows
	}
	s.log.Info().Str("application_id", id.String()).Msg("Application rejected")
	return nil
}
