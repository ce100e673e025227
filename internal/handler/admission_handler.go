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

// AdmissionHandler handles the public admission form and its review.
type AdmissionHandler struct {
	admissionService *service.AdmissionService
}

// NewAdmissionHandler creates a new AdmissionHandler.
func NewAdmissionHandler(admissionService *service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionService: admissionService}
}

// SubmitAdmission godoc
// POST /api/v1/admissions
// Public admission form.
func (h *AdmissionHandler) SubmitAdmission(c *gin.Context) {
	var req model.CreateAdmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admission, err := h.admissionService.Submit(c.Request.Context(), req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"admission": admission})
}

// ListAdmissions godoc
// GET /api/v1/admin/admissions
func (h *AdmissionHandler) ListAdmissions(c *gin.Context) {
	admissions, err := h.admissionService.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"admissions": admissions})
}

// UpdateAdmissionStatus godoc
// PUT /api/v1/admin/admissions/:admission_id/status
func (h *AdmissionHandler) UpdateAdmissionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("admission_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAdmissionStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.admissionService.SetStatus(c.Request.Context(), middleware.GetActor(c), id, model.IntakeStatus(req.Status)); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "admission " + req.Status})
}
