package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

var ErrCourseHasDependents = errors.New("course still has enrollments, exams or resources")

// CourseService handles the course catalog.
type CourseService struct {
	courseRepo *repository.CourseRepository
	log        zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		log:        log.With().Str("component", "course_service").Logger(),
	}
}

// GetByID retrieves a course by its UUID.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves the full catalog. Public.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// Create adds a course to the catalog. Admin only.
func (s *CourseService) Create(ctx context.Context, actor authz.Actor, req model.CreateCourseRequest) (*model.Course, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	course := &model.Course{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Duration:    req.Duration,
		Fee:         req.Fee,
		Eligibility: req.Eligibility,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.log.Info().Str("course_id", course.ID.String()).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// Update modifies a course. Admin only. Omitted fields keep their values.
func (s *CourseService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateCourseRequest) (*model.Course, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Type != "" {
		course.Type = req.Type
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Fee != nil {
		course.Fee = *req.Fee
	}
	if req.Eligibility != nil {
		course.Eligibility = *req.Eligibility
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course. Admin only. Refused while any enrollment, exam
// or resource still references it; the referencing records must go first.
func (s *CourseService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	dependent, err := s.courseRepo.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if dependent {
		return ErrCourseHasDependents
	}
	deleted, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return pgx.ErrNoRows
	}
	s.log.Info().Str("course_id", id.String()).Msg("Course deleted")
	return nil
}
