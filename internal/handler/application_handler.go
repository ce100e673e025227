package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/middleware"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/response"
	"github.com/vesdm/institute-backend/internal/service"
	"github.com/vesdm/institute-backend/internal/validator"
)

// ApplicationHandler handles online applications and their review.
type ApplicationHandler struct {
	applicationService *service.ApplicationService
	mediaService       *service.MediaService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService *service.ApplicationService, mediaService *service.MediaService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService, mediaService: mediaService}
}

// SubmitApplication godoc
// POST /api/v1/applications
// Public multipart form; supporting documents under "documents".
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req model.CreateApplicationRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var documents []string
	if form, err := c.MultipartForm(); err == nil {
		for _, header := range form.File["documents"] {
			file, err := header.Open()
			if err != nil {
				response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
				return
			}
			url, err := h.mediaService.SaveUpload(file, header, service.UploadDocument)
			file.Close()
			if err != nil {
				failFromErr(c, err)
				return
			}
			documents = append(documents, url)
		}
	}

	application, err := h.applicationService.Submit(c.Request.Context(), req, documents)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"application": application})
}

// ListPendingApplications godoc
// GET /api/v1/admin/applications
func (h *ApplicationHandler) ListPendingApplications(c *gin.Context) {
	applications, err := h.applicationService.ListPending(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": applications})
}

// ApproveApplication godoc
// POST /api/v1/admin/applications/:application_id/approve
// Converts the application into a student with a fresh registration number.
func (h *ApplicationHandler) ApproveApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("application_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, err := h.applicationService.Approve(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// RejectApplication godoc
// POST /api/v1/admin/applications/:application_id/reject
func (h *ApplicationHandler) RejectApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("application_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.applicationService.Reject(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "application rejected"})
}
