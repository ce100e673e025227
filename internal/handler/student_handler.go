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

// StudentHandler handles student record endpoints.
type StudentHandler struct {
	studentService    *service.StudentService
	enrollmentService *service.EnrollmentService
	mediaService      *service.MediaService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	studentService *service.StudentService,
	enrollmentService *service.EnrollmentService,
	mediaService *service.MediaService,
) *StudentHandler {
	return &StudentHandler{
		studentService:    studentService,
		enrollmentService: enrollmentService,
		mediaService:      mediaService,
	}
}

// CreateStudent godoc
// POST /api/v1/students
// Registers a student and issues a permanent registration number.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// ListStudents godoc
// GET /api/v1/students
// Admins see all students; franchisees only their own.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent godoc
// GET /api/v1/students/:student_id
// Full record: profile, enrollments, exam records, documents.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/students/:student_id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// UploadDocuments godoc
// POST /api/v1/students/:student_id/documents
// Accepts one or more files under the "documents" multipart field.
func (h *StudentHandler) UploadDocuments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	headers := form.File["documents"]
	if len(headers) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	urls := make([]string, 0, len(headers))
	for _, header := range headers {
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
		urls = append(urls, url)
	}

	if err := h.studentService.AddDocuments(c.Request.Context(), middleware.GetActor(c), id, urls); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"documents": urls})
}

// EnrollExisting godoc
// POST /api/v1/students/enroll
// Enrolls an already-registered student in an additional course.
func (h *StudentHandler) EnrollExisting(c *gin.Context) {
	var req model.EnrollExistingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.EnrollExisting(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// UpdateProgress godoc
// PUT /api/v1/students/:student_id/courses/:course_id/progress
func (h *StudentHandler) UpdateProgress(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.UpdateProgress(c.Request.Context(), middleware.GetActor(c), studentID, courseID, req.Progress)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// IssueCertificate godoc
// POST /api/v1/students/:student_id/courses/:course_id/certificate
// Accepts the certificate scan under the "certificate" multipart field,
// generates the certificate number and completes the enrollment.
func (h *StudentHandler) IssueCertificate(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	header, err := c.FormFile("certificate")
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

	certURL, err := h.mediaService.SaveUpload(file, header, service.UploadDocument)
	if err != nil {
		failFromErr(c, err)
		return
	}

	enrollment, err := h.enrollmentService.IssueCertificate(c.Request.Context(), middleware.GetActor(c), studentID, courseID, certURL)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// VerifyCertificate godoc
// POST /api/v1/verify-certificate
// Public: resolves a certificate number to its public details. An unknown
// number returns valid=false with nothing else.
func (h *StudentHandler) VerifyCertificate(c *gin.Context) {
	var req model.VerifyCertificateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.enrollmentService.VerifyCertificate(c.Request.Context(), req.RegistrationNumber)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// AccessByRegistrationNumber godoc
// POST /api/v1/student-access
// Public portal entry: the registration number is the credential.
func (h *StudentHandler) AccessByRegistrationNumber(c *gin.Context) {
	var req model.StudentAccessRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.AccessByRegistrationNumber(c.Request.Context(), req.RegistrationNumber)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}
