package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/repository"
	"github.com/vesdm/institute-backend/internal/response"
	"github.com/vesdm/institute-backend/internal/service"
)

// failFromErr maps domain errors to HTTP responses. Every handler funnels
// service errors through here so the status/code pairing stays uniform.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows),
		errors.Is(err, repository.ErrEnrollmentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, authz.ErrAdminOnly):
		response.Fail(c, http.StatusForbidden, response.ErrAdminOnly)
	case errors.Is(err, authz.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
	case errors.Is(err, authz.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrSetupCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSetupDone)
	case errors.Is(err, service.ErrInvalidExamWindow):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidExamWindow)
	case errors.Is(err, service.ErrDeadlinePassed):
		response.Fail(c, http.StatusForbidden, response.ErrDeadlinePassed)
	case errors.Is(err, service.ErrPublishTooEarly):
		response.Fail(c, http.StatusForbidden, response.ErrPublishTooEarly)
	case errors.Is(err, service.ErrCourseHasDependents):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, service.ErrApplicationNotPending):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, repository.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
