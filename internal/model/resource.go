package model

import (
	"time"

	"github.com/google/uuid"
)

// ResourceCategory buckets learning resources by audience purpose.
type ResourceCategory string

const (
	ResourceCategoryTraining ResourceCategory = "training"
	ResourceCategoryForms    ResourceCategory = "forms"
	ResourceCategoryGuides   ResourceCategory = "guides"
)

// Resource is a downloadable study material attached to one course.
type Resource struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Category    ResourceCategory `json:"category"`
	Type        string           `json:"type"`
	FileURL     string           `json:"file_url"`
	Size        string           `json:"size,omitempty"`
	CourseID    uuid.UUID        `json:"course_id"`
	CourseName  string           `json:"course_name,omitempty"`
	UploadDate  time.Time        `json:"upload_date"`
}

// CreateResourceRequest is the multipart form payload for a new resource.
// The file itself arrives as the "file" form field.
type CreateResourceRequest struct {
	Title       string    `form:"title" binding:"required,min=2,max=255"`
	Description string    `form:"description" binding:"omitempty,max=2000"`
	Category    string    `form:"category" binding:"omitempty,oneof=training forms guides"`
	CourseID    uuid.UUID `form:"course_id" binding:"required"`
}

// UpdateResourceRequest is the multipart form payload for editing a resource.
type UpdateResourceRequest struct {
	Title       string     `form:"title" binding:"omitempty,min=2,max=255"`
	Description *string    `form:"description" binding:"omitempty,max=2000"`
	Category    string     `form:"category" binding:"omitempty,oneof=training forms guides"`
	CourseID    *uuid.UUID `form:"course_id" binding:"omitempty"`
}
