package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/middleware"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/response"
	"github.com/vesdm/institute-backend/internal/service"
	"github.com/vesdm/institute-backend/internal/validator"
)

// ExamHandler handles exam lifecycle endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// examView decorates an exam with its derived lifecycle state.
type examView struct {
	model.Exam
	State model.ExamState `json:"state"`
}

func toExamView(e model.Exam, now time.Time) examView {
	return examView{Exam: e, State: e.State(now)}
}

// CreateExam godoc
// POST /api/v1/admin/exams
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": toExamView(*exam, time.Now())})
}

// ListExams godoc
// GET /api/v1/exams
// Admins see every exam; franchisees only exams with their students on the
// roster. Pass ?status=open for exams still accepting registrations.
func (h *ExamHandler) ListExams(c *gin.Context) {
	var (
		exams []model.Exam
		err   error
	)
	if c.Query("status") == "open" {
		exams, err = h.examService.ListOpen(c.Request.Context())
	} else {
		exams, err = h.examService.List(c.Request.Context(), middleware.GetActor(c))
	}
	if err != nil {
		failFromErr(c, err)
		return
	}

	now := time.Now()
	views := make([]examView, 0, len(exams))
	for _, e := range exams {
		views = append(views, toExamView(e, now))
	}
	response.Success(c, http.StatusOK, gin.H{"exams": views})
}

// GetExam godoc
// GET /api/v1/exams/:exam_id
func (h *ExamHandler) GetExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": toExamView(*exam, time.Now())})
}

// RegisterStudents godoc
// POST /api/v1/exams/:exam_id/registrations
// Adds students to the roster; returns a per-student outcome list.
func (h *ExamHandler) RegisterStudents(c *gin.Context) {
	id, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RegisterStudentsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	results, err := h.examService.RegisterStudents(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetRegistrationStatus godoc
// GET /api/v1/exams/:exam_id/registration-status
// Splits the franchisee's students into registered and available.
func (h *ExamHandler) GetRegistrationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	actor := middleware.GetActor(c)
	status, err := h.examService.GetRegistrationStatus(c.Request.Context(), actor.ID, id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// GetRoster godoc
// GET /api/v1/exams/:exam_id/roster
// Admins get the full roster; franchisees only their own students.
func (h *ExamHandler) GetRoster(c *gin.Context) {
	id, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	roster, err := h.examService.GetRoster(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roster": roster})
}

// PublishResults godoc
// POST /api/v1/admin/exams/:exam_id/publish
// Writes marks and grades, then moves the exam to its terminal published
// state. Invalid entries are skipped and reported per item.
func (h *ExamHandler) PublishResults(c *gin.Context) {
	id, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.PublishResultsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	results, err := h.examService.PublishResults(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}
