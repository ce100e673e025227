package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// ResourceService handles downloadable learning materials.
type ResourceService struct {
	resourceRepo   *repository.ResourceRepository
	courseRepo     *repository.CourseRepository
	enrollmentRepo *repository.EnrollmentRepository
	log            zerolog.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(
	resourceRepo *repository.ResourceRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	log zerolog.Logger,
) *ResourceService {
	return &ResourceService{
		resourceRepo:   resourceRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		log:            log.With().Str("component", "resource_service").Logger(),
	}
}

// Create attaches an uploaded file to a course as a resource. Admin only.
// The file is already stored; fileURL, size and the original filename come
// from the upload step.
func (s *ResourceService) Create(ctx context.Context, actor authz.Actor, req model.CreateResourceRequest, fileURL, size, originalName string) (*model.Resource, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	category := model.ResourceCategory(req.Category)
	if category == "" {
		category = model.ResourceCategoryTraining
	}

	resource := &model.Resource{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Type:        fileType(originalName),
		FileURL:     fileURL,
		Size:        size,
		CourseID:    req.CourseID,
	}
	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	s.log.Info().Str("resource_id", resource.ID.String()).Str("title", resource.Title).Msg("Resource created")
	return resource, nil
}

// List retrieves all resources. Staff only.
func (s *ResourceService) List(ctx context.Context, actor authz.Actor) ([]model.Resource, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	resources, err := s.resourceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	return resources, nil
}

// ListForStudent retrieves the resources attached to the student's enrolled
// courses.
func (s *ResourceService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Resource, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	resources, err := s.resourceRepo.ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	return resources, nil
}

// Update modifies a resource's metadata, optionally replacing the file.
// Admin only. Pass empty fileURL to keep the stored file.
func (s *ResourceService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateResourceRequest, fileURL, size, originalName string) (*model.Resource, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		resource.Title = req.Title
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if req.Category != "" {
		resource.Category = model.ResourceCategory(req.Category)
	}
	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		resource.CourseID = *req.CourseID
	}
	if fileURL != "" {
		resource.FileURL = fileURL
		resource.Size = size
		resource.Type = fileType(originalName)
	}
	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes a resource. Admin only.
func (s *ResourceService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	deleted, err := s.resourceRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return pgx.ErrNoRows
	}
	s.log.Info().Str("resource_id", id.String()).Msg("Resource deleted")
	return nil
}

// fileType derives the displayed type label from a filename extension.
func fileType(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "file"
	}
	return ext
}
