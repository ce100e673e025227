package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vesdm/institute-backend/internal/middleware"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/response"
	"github.com/vesdm/institute-backend/internal/service"
	"github.com/vesdm/institute-backend/internal/validator"
)

// InquiryHandler handles public contact-form endpoints.
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// SubmitInquiry godoc
// POST /api/v1/inquiries
// Public contact form.
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	var req model.CreateInquiryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	inquiry, err := h.inquiryService.Submit(c.Request.Context(), req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"inquiry": inquiry})
}

// ListInquiries godoc
// GET /api/v1/admin/inquiries
func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	inquiries, err := h.inquiryService.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"inquiries": inquiries})
}
