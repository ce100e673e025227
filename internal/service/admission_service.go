package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// AdmissionService handles the public admission form and its review.
type AdmissionService struct {
	admissionRepo *repository.AdmissionRepository
	courseRepo    *repository.CourseRepository
	log           zerolog.Logger
}

// NewAdmissionService creates a new AdmissionService.
func NewAdmissionService(admissionRepo *repository.AdmissionRepository, courseRepo *repository.CourseRepository, log zerolog.Logger) *AdmissionService {
	return &AdmissionService{
		admissionRepo: admissionRepo,
		courseRepo:    courseRepo,
		log:           log.With().Str("component", "admission_service").Logger(),
	}
}

// Submit records a public admission form as pending.
func (s *AdmissionService) Submit(ctx context.Context, req model.CreateAdmissionRequest) (*model.Admission, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	mode := model.StudyMode(req.StudyMode)
	if mode == "" {
		mode = model.StudyModeOffline
	}

	admission := &model.Admission{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		DOB:           req.DOB,
		Qualification: req.Qualification,
		Institution:   req.Institution,
		YearOfPassing: req.YearOfPassing,
		Percentage:    req.Percentage,
		CourseID:      req.CourseID,
		CourseName:    course.Name,
		StudyMode:     mode,
		StartDate:     req.StartDate,
	}
	if err := s.admissionRepo.Create(ctx, admission); err != nil {
		return nil, err
	}
	s.log.Info().Str("admission_id", admission.ID.String()).Msg("Admission submitted")
	return admission, nil
}

// List retrieves all admissions for review. Admin only.
func (s *AdmissionService) List(ctx context.Context, actor authz.Actor) ([]model.Admission, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	admissions, err := s.admissionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if admissions == nil {
		admissions = []model.Admission{}
	}
	return admissions, nil
}

// SetStatus approves or rejects a pending admission. Admin only.
func (s *AdmissionService) SetStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, status model.IntakeStatus) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	affected, err := s.admissionRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return pgx.ErrNoRows
	}
	s.log.Info().Str("admission_id", id.String()).Str("status", string(status)).Msg("Admission reviewed")
	return nil
}
