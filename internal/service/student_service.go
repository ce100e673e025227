package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// registrationPrefix brands every registration number issued by the
// institute. The full format is VESDM<year><zero-padded sequence>.
const registrationPrefix = "VESDM"

// FormatRegistrationNumber renders a counter value as a permanent
// registration number. Sequences are global, not per-year, so numbers never
// collide across year boundaries.
func FormatRegistrationNumber(year int, seq int64) string {
	return fmt.Sprintf("%s%d%05d", registrationPrefix, year, seq)
}

// StudentService handles student registration and record access.
type StudentService struct {
	studentRepo    *repository.StudentRepository
	enrollmentRepo *repository.EnrollmentRepository
	examRepo       *repository.ExamRepository
	courseRepo     *repository.CourseRepository
	log            zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo *repository.StudentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	examRepo *repository.ExamRepository,
	courseRepo *repository.CourseRepository,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		examRepo:       examRepo,
		courseRepo:     courseRepo,
		log:            log.With().Str("component", "student_service").Logger(),
	}
}

// Create registers a new student with a freshly issued registration number
// and optionally enrolls them in an initial course. Franchisees always own
// the students they create; admins may assign any franchise or none.
func (s *StudentService) Create(ctx context.Context, actor authz.Actor, req model.CreateStudentRequest) (*model.Student, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}

	franchiseeID := req.FranchiseeID
	if !actor.IsAdmin() {
		id := actor.ID
		franchiseeID = &id
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	seq, err := s.studentRepo.NextRegistrationSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("advance registration counter: %w", err)
	}

	student := &model.Student{
		RegistrationNumber: FormatRegistrationNumber(year, seq),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Year:               year,
		FranchiseeID:       franchiseeID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	if req.CourseID != nil {
		enrollment := &model.Enrollment{StudentID: student.ID, CourseID: *req.CourseID}
		if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
			return nil, err
		}
		student.Enrollments = []model.Enrollment{*enrollment}
	}

	s.log.Info().
		Str("student_id", student.ID.String()).
		Str("registration_number", student.RegistrationNumber).
		Msg("Student registered")
	return student, nil
}

// Get loads the full student record: profile, enrollments, exam records and
// document list. Access follows the ownership policy.
func (s *StudentService) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessStudent(actor, student); err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, student)
}

// List retrieves students visible to the actor: all for admins, own for
// franchisees.
func (s *StudentService) List(ctx context.Context, actor authz.Actor) ([]model.Student, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	var franchiseeID *uuid.UUID
	if !actor.IsAdmin() {
		franchiseeID = &actor.ID
	}
	students, err := s.studentRepo.List(ctx, franchiseeID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// Update modifies a student's profile. The registration number is permanent
// and never changes.
func (s *StudentService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateStudentRequest) (*model.Student, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessStudent(actor, student); err != nil {
		return nil, err
	}

	if req.Name != "" {
		student.Name = req.Name
	}
	if req.Email != "" {
		student.Email = req.Email
	}
	if req.Phone != "" {
		student.Phone = req.Phone
	}
	if req.Year != 0 {
		student.Year = req.Year
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// AddDocuments records uploaded document filenames against a student.
func (s *StudentService) AddDocuments(ctx context.Context, actor authz.Actor, id uuid.UUID, fileNames []string) error {
	if err := authz.RequireStaff(actor); err != nil {
		return err
	}
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanAccessStudent(actor, student); err != nil {
		return err
	}
	return s.studentRepo.AddDocuments(ctx, id, fileNames)
}

// AccessByRegistrationNumber resolves a registration number to the full
// student record. This backs the public portal entry; the registration
// number itself is the credential.
func (s *StudentService) AccessByRegistrationNumber(ctx context.Context, regNum string) (*model.Student, error) {
	student, err := s.studentRepo.GetByRegistrationNumber(ctx, regNum)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, student)
}

// UpdateProfile applies the self-service profile fields. Only name, email
// and phone are student-editable; everything else stays staff-managed.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID uuid.UUID, req model.UpdatePortalProfileRequest) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		student.Name = req.Name
	}
	if req.Email != "" {
		student.Email = req.Email
	}
	if req.Phone != "" {
		student.Phone = req.Phone
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ListEnrollments returns a student's enrollments with course info.
func (s *StudentService) ListEnrollments(ctx context.Context, studentID uuid.UUID) ([]model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

// ListPublishedResults returns a student's published exam results, newest
// first.
func (s *StudentService) ListPublishedResults(ctx context.Context, studentID uuid.UUID) ([]model.StudentExamResult, error) {
	results, err := s.examRepo.ListPublishedResults(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.StudentExamResult{}
	}
	return results, nil
}

// GetByUserID resolves the student linked to a portal login account.
func (s *StudentService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, student)
}

func (s *StudentService) loadDetail(ctx context.Context, student *model.Student) (*model.Student, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.examRepo.ListRecordsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	docs, err := s.studentRepo.ListDocuments(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	student.Enrollments = enrollments
	student.ExamRecords = records
	student.Documents = docs
	return student, nil
}
