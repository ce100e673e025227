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

// PortalHandler handles the student self-service portal. Every endpoint
// resolves the student through the authenticated account link, so a student
// can only ever see their own record.
type PortalHandler struct {
	studentService   *service.StudentService
	resourceService  *service.ResourceService
	dashboardService *service.DashboardService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(
	studentService *service.StudentService,
	resourceService *service.ResourceService,
	dashboardService *service.DashboardService,
) *PortalHandler {
	return &PortalHandler{
		studentService:   studentService,
		resourceService:  resourceService,
		dashboardService: dashboardService,
	}
}

// resolveStudent loads the student linked to the authenticated account.
func (h *PortalHandler) resolveStudent(c *gin.Context) *model.Student {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil
	}
	if claims.Role != model.RoleStudent {
		response.Fail(c, http.StatusForbidden, response.ErrStudentOnly)
		return nil
	}

	student, err := h.studentService.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return nil
	}
	return student
}

// GetProfile godoc
// GET /api/v1/portal/me
// The student's full record: profile, enrollments, exam records, documents.
func (h *PortalHandler) GetProfile(c *gin.Context) {
	student := h.resolveStudent(c)
	if student == nil {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// UpdateProfile godoc
// PUT /api/v1/portal/me
// Students may update their own contact details only.
func (h *PortalHandler) UpdateProfile(c *gin.Context) {
	student := h.resolveStudent(c)
	if student == nil {
		return
	}

	var req model.UpdatePortalProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.studentService.UpdateProfile(c.Request.Context(), student.ID, req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": updated})
}

// GetCourses godoc
// GET /api/v1/portal/courses
// The student's enrollments with course details and progress.
func (h *PortalHandler) GetCourses(c *gin.Context) {
	student := h.resolveStudent(c)
	if student == nil {
		return
	}

	enrollments, err := h.studentService.ListEnrollments(c.Request.Context(), student.ID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// GetResults godoc
// GET /api/v1/portal/results
// Published exam results only; unpublished marks are never exposed.
func (h *PortalHandler) GetResults(c *gin.Context) {
	student := h.resolveStudent(c)
	if student == nil {
		return
	}

	results, err := h.studentService.ListPublishedResults(c.Request.Context(), student.ID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetDashboard godoc
// GET /api/v1/portal/dashboard
// Headline counts plus published results.
func (h *PortalHandler) GetDashboard(c *gin.Context) {
	student := h.resolveStudent(c)
	if student == nil {
		return
	}

	dashboard, err := h.dashboardService.GetStudentDashboard(c.Request.Context(), student.ID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// GetResources godoc
// GET /api/v1/portal/resources
// Resources attached to the student's enrolled courses.
func (h *PortalHandler) GetResources(c *gin.Context) {
	student := h.resolveStudent(c)
	if student == nil {
		return
	}

	resources, err := h.resourceService.ListForStudent(c.Request.Context(), student.ID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}
