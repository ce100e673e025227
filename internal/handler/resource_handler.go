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

// ResourceHandler handles learning-resource endpoints.
type ResourceHandler struct {
	resourceService *service.ResourceService
	mediaService    *service.MediaService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService *service.ResourceService, mediaService *service.MediaService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, mediaService: mediaService}
}

// ListResources godoc
// GET /api/v1/resources
// Staff listing of all resources.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.resourceService.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

// CreateResource godoc
// POST /api/v1/admin/resources
// Multipart: metadata fields plus the file under "file".
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req model.CreateResourceRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	defer file.Close()

	fileURL, err := h.mediaService.SaveUpload(file, header, service.UploadResource)
	if err != nil {
		failFromErr(c, err)
		return
	}

	resource, err := h.resourceService.Create(c.Request.Context(), middleware.GetActor(c), req,
		fileURL, service.HumanSize(header.Size), header.Filename)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"resource": resource})
}

// UpdateResource godoc
// PUT /api/v1/admin/resources/:resource_id
// Multipart: any metadata field, optionally a replacement file.
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("resource_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateResourceRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var fileURL, size, originalName string
	if header, err := c.FormFile("file"); err == nil {
		file, err := header.Open()
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		defer file.Close()

		fileURL, err = h.mediaService.SaveUpload(file, header, service.UploadResource)
		if err != nil {
			failFromErr(c, err)
			return
		}
		size = service.HumanSize(header.Size)
		originalName = header.Filename
	}

	resource, err := h.resourceService.Update(c.Request.Context(), middleware.GetActor(c), id, req, fileURL, size, originalName)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resource": resource})
}

// DeleteResource godoc
// DELETE /api/v1/admin/resources/:resource_id
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("resource_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "resource deleted"})
}
