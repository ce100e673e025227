package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/middleware"
	"github.com/vesdm/institute-backend/internal/response"
	"github.com/vesdm/institute-backend/internal/service"
)

// DashboardHandler handles the franchise dashboard endpoint.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetFranchiseDashboard godoc
// GET /api/v1/franchise/dashboard
// Franchisees get their own dashboard; admins may inspect any franchise via
// ?franchisee_id=.
func (h *DashboardHandler) GetFranchiseDashboard(c *gin.Context) {
	actor := middleware.GetActor(c)

	franchiseeID := actor.ID
	if raw := c.Query("franchisee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		franchiseeID = id
	}

	dashboard, err := h.dashboardService.GetFranchiseDashboard(c.Request.Context(), actor, franchiseeID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}
