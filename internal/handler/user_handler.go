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

// UserHandler handles franchisee account administration endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateFranchisee godoc
// POST /api/v1/admin/franchisees
func (h *UserHandler) CreateFranchisee(c *gin.Context) {
	var req model.CreateFranchiseeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.CreateFranchisee(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// ListFranchisees godoc
// GET /api/v1/admin/franchisees
func (h *UserHandler) ListFranchisees(c *gin.Context) {
	users, err := h.userService.ListFranchisees(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"franchisees": users})
}
