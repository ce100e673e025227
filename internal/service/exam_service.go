package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/config"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// Domain Errors
var (
	ErrInvalidExamWindow = errors.New("registration deadline must not be after the exam date")
	ErrDeadlinePassed    = errors.New("registration deadline has passed")
	ErrPublishTooEarly   = errors.New("results cannot be published before the exam date")
)

// openExamsTTL bounds staleness of the cached open-exam listing. The
// listing is deadline-derived, so entries age out of "open" on their own;
// a short TTL keeps the transition visible without explicit invalidation
// on every clock tick.
const openExamsTTL = 60 * time.Second

// ExamService handles the exam lifecycle: creation, roster registration and
// result publication.
type ExamService struct {
	examRepo    *repository.ExamRepository
	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	studentRepo *repository.StudentRepository,
	courseRepo *repository.CourseRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:    examRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "exam_service").Logger(),
	}
}

// GradeFor maps a marks/total pair to the fixed letter-grade table.
func GradeFor(marks, totalMarks int) string {
	pct := float64(marks) * 100 / float64(totalMarks)
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B+"
	case pct >= 60:
		return "B"
	case pct >= 50:
		return "C"
	case pct >= 40:
		return "D"
	default:
		return "F"
	}
}

// GetByID retrieves an exam by its UUID.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// Create schedules a new exam. Admin only; the registration deadline must
// not fall after the exam date.
func (s *ExamService) Create(ctx context.Context, actor authz.Actor, req model.CreateExamRequest) (*model.Exam, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Deadline.After(req.Date) {
		return nil, ErrInvalidExamWindow
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Name:            req.Name,
		Subject:         req.Subject,
		Date:            req.Date,
		Deadline:        req.Deadline,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		PassingMarks:    req.PassingMarks,
		CourseID:        req.CourseID,
		CreatedBy:       actor.ID,
		CreatedByRole:   actor.Role,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}

	s.invalidateOpenExams(ctx)
	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Str("course_id", exam.CourseID.String()).
		Time("date", exam.Date).
		Msg("Exam created")
	return exam, nil
}

// List retrieves exams for the actor: admins see everything, franchisees
// only exams with their students registered.
func (s *ExamService) List(ctx context.Context, actor authz.Actor) ([]model.Exam, error) {
	if actor.IsAdmin() {
		return s.examRepo.List(ctx, false, time.Now())
	}
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	return s.examRepo.ListByFranchise(ctx, actor.ID)
}

// ListOpen retrieves exams still open for registration, served from Redis
// when warm.
func (s *ExamService) ListOpen(ctx context.Context) ([]model.Exam, error) {
	key := config.CacheKey.OpenExamsKey()
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var exams []model.Exam
		if err := json.Unmarshal(data, &exams); err == nil {
			return exams, nil
		}
		// Corrupt cache entry, fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Redis unavailable, serving open exams from database")
	}

	exams, err := s.examRepo.List(ctx, true, time.Now())
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(exams); err == nil {
		if err := s.rdb.Set(ctx, key, data, openExamsTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to cache open exams")
		}
	}
	return exams, nil
}

// RegisterStudents adds students to the exam roster and reports a per-item
// outcome for each. Registration is refused once the deadline has passed or
// the exam is published. Franchisees may only register their own students.
func (s *ExamService) RegisterStudents(ctx context.Context, actor authz.Actor, examID uuid.UUID, req model.RegisterStudentsRequest) ([]model.RegistrationResult, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}

	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.State(time.Now()) != model.ExamStateOpen {
		return nil, ErrDeadlinePassed
	}

	results := make([]model.RegistrationResult, 0, len(req.StudentIDs))
	for _, studentID := range req.StudentIDs {
		outcome, err := s.registerOne(ctx, actor, exam, studentID)
		if err != nil {
			return nil, err
		}
		results = append(results, model.RegistrationResult{StudentID: studentID, Outcome: outcome})
	}

	s.log.Info().
		Str("exam_id", examID.String()).
		Int("requested", len(req.StudentIDs)).
		Msg("Roster registration processed")
	return results, nil
}

func (s *ExamService) registerOne(ctx context.Context, actor authz.Actor, exam *model.Exam, studentID uuid.UUID) (model.RegistrationOutcome, error) {
	if !actor.IsAdmin() {
		student, err := s.studentRepo.GetByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.RegistrationUnknownStudent, nil
			}
			return "", err
		}
		if err := authz.CanAccessStudent(actor, student); err != nil {
			return "", err
		}
	}

	added, err := s.examRepo.AddRegistration(ctx, exam.ID, studentID, exam.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownStudent) {
			return model.RegistrationUnknownStudent, nil
		}
		return "", err
	}
	if !added {
		return model.RegistrationAlreadyRegistered, nil
	}
	return model.RegistrationAdded, nil
}

// GetRegistrationStatus partitions one franchise's students into those
// already on the exam roster and those still available.
func (s *ExamService) GetRegistrationStatus(ctx context.Context, franchiseeID, examID uuid.UUID) (*model.RegistrationStatus, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	registeredIDs, err := s.examRepo.ListRegisteredIDs(ctx, examID)
	if err != nil {
		return nil, err
	}
	roster, err := s.studentRepo.ListRosterByFranchisee(ctx, franchiseeID)
	if err != nil {
		return nil, err
	}

	status := &model.RegistrationStatus{
		Registered: []model.RosterStudent{},
		Available:  []model.RosterStudent{},
	}
	for _, student := range roster {
		if registeredIDs[student.ID] {
			status.Registered = append(status.Registered, student)
		} else {
			status.Available = append(status.Available, student)
		}
	}
	return status, nil
}

// GetRoster returns the exam's registered students. Admins see the full
// roster with franchise names; franchisees see only their own students.
func (s *ExamService) GetRoster(ctx context.Context, actor authz.Actor, examID uuid.UUID) ([]model.RosterStudent, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	var franchiseeID *uuid.UUID
	if !actor.IsAdmin() {
		franchiseeID = &actor.ID
	}
	roster, err := s.examRepo.ListRoster(ctx, examID, franchiseeID)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		roster = []model.RosterStudent{}
	}
	return roster, nil
}

// PublishResults writes marks and grades and flips the exam to its terminal
// published state. A record is created for any existing student, registered
// or not; entries for nonexistent students or with marks outside 0..total
// are skipped and reported, never blocking the rest of the batch.
// Re-publication overwrites prior marks.
func (s *ExamService) PublishResults(ctx context.Context, actor authz.Actor, examID uuid.UUID, req model.PublishResultsRequest) ([]model.PublishResult, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanPublishResults(actor, exam); err != nil {
		return nil, err
	}

	now := time.Now()
	if now.Before(exam.Date) {
		return nil, ErrPublishTooEarly
	}

	results := make([]model.PublishResult, 0, len(req.Results))
	applied := 0
	for _, entry := range req.Results {
		if entry.Marks < 0 || entry.Marks > exam.TotalMarks {
			results = append(results, model.PublishResult{
				StudentID: entry.StudentID,
				Outcome:   model.PublishInvalidMarks,
			})
			continue
		}

		grade := GradeFor(entry.Marks, exam.TotalMarks)
		marks := entry.Marks
		rec := &model.ExamRecord{
			StudentID:     entry.StudentID,
			ExamID:        examID,
			CourseID:      exam.CourseID,
			Marks:         &marks,
			Grade:         grade,
			PublishedDate: &now,
		}
		if err := s.examRepo.UpsertRecord(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrUnknownStudent) {
				results = append(results, model.PublishResult{
					StudentID: entry.StudentID,
					Outcome:   model.PublishUnknownStudent,
				})
				continue
			}
			return nil, err
		}
		applied++
		results = append(results, model.PublishResult{
			StudentID: entry.StudentID,
			Outcome:   model.PublishApplied,
			Grade:     grade,
		})
	}

	// The exam goes published even if every entry was skipped; the state
	// transition is about the exam, not any single student's row.
	if err := s.examRepo.MarkPublished(ctx, examID, now); err != nil {
		return nil, err
	}
	s.invalidateOpenExams(ctx)

	s.log.Info().
		Str("exam_id", examID.String()).
		Int("applied", applied).
		Int("skipped", len(results)-applied).
		Msg("Exam results published")
	return results, nil
}

func (s *ExamService) invalidateOpenExams(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.OpenExamsKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate open-exams cache")
	}
}
