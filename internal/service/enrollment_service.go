package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
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

// certNumberAttempts bounds the regenerate-and-retry loop when a freshly
// generated certificate number collides with an existing one. The random
// suffix keyspace makes more than one retry vanishingly rare.
const certNumberAttempts = 5

// certVerifyTTL caps how long a verification lookup is served from cache.
const certVerifyTTL = 10 * time.Minute

// EnrollmentService handles course enrollment, certificate issuance and
// public certificate verification.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	studentRepo    *repository.StudentRepository
	courseRepo     *repository.CourseRepository
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	studentRepo *repository.StudentRepository,
	courseRepo *repository.CourseRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "enrollment_service").Logger(),
	}
}

// CertificateNumber builds a human-checkable certificate identifier from
// the student's registration number and the course. The random suffix keeps
// numbers unguessable; uniqueness is enforced by the database index.
func CertificateNumber(registrationNumber string, courseID uuid.UUID) string {
	suffix := rand.IntN(10000)
	return strings.ToUpper(fmt.Sprintf("%s-%s-%04d", registrationNumber, courseID.String()[:4], suffix))
}

// NormalizeCertificateNumber canonicalizes user-supplied certificate input
// the same way issued numbers are stored.
func NormalizeCertificateNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// EnrollExisting enrolls an already-registered student in an additional
// course. The student keeps their registration number; a duplicate
// (student, course) pair is refused.
func (s *EnrollmentService) EnrollExisting(ctx context.Context, actor authz.Actor, req model.EnrollExistingRequest) (*model.Enrollment, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessStudent(actor, student); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{StudentID: student.ID, CourseID: course.ID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.CourseName = course.Name
	enrollment.CourseType = course.Type

	s.log.Info().
		Str("student_id", student.ID.String()).
		Str("course_id", course.ID.String()).
		Msg("Student enrolled in additional course")
	return enrollment, nil
}

// UpdateProgress sets the completion percentage of one enrollment.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, actor authz.Actor, studentID, courseID uuid.UUID, progress int) (*model.Enrollment, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessStudent(actor, student); err != nil {
		return nil, err
	}
	enrollment, err := s.enrollmentRepo.GetByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentRepo.UpdateProgress(ctx, enrollment.ID, progress); err != nil {
		return nil, err
	}
	enrollment.Progress = progress
	return enrollment, nil
}

// IssueCertificate records a certificate on the student's enrollment and
// marks the course completed. Franchisees may issue for their own students.
// The number is generated here and regenerated on the rare collision with an
// existing certificate.
func (s *EnrollmentService) IssueCertificate(ctx context.Context, actor authz.Actor, studentID, courseID uuid.UUID, certFile string) (*model.Enrollment, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessStudent(actor, student); err != nil {
		return nil, err
	}
	enrollment, err := s.enrollmentRepo.GetByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	// Re-issuing orphans the previous number; stop the verifier from serving
	// it out of cache for the rest of its TTL.
	if enrollment.Certificate != nil {
		oldKey := config.CacheKey.CertificateVerifyKey(enrollment.Certificate.Number)
		if err := s.rdb.Del(ctx, oldKey).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to invalidate replaced certificate number")
		}
	}

	now := time.Now()
	var cert model.Certificate
	for attempt := 0; ; attempt++ {
		cert = model.Certificate{
			File:      certFile,
			Number:    CertificateNumber(student.RegistrationNumber, courseID),
			IssueDate: now,
		}
		err = s.enrollmentRepo.SetCertificate(ctx, enrollment.ID, cert)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateCertificateNumber) || attempt+1 >= certNumberAttempts {
			return nil, err
		}
	}

	enrollment.Certificate = &cert
	enrollment.Status = model.EnrollmentCompleted
	enrollment.CompletedDate = &now

	s.log.Info().
		Str("student_id", studentID.String()).
		Str("certificate_number", cert.Number).
		Msg("Certificate issued")
	return enrollment, nil
}

// VerifyCertificate resolves a certificate number to its public details.
// An unknown number yields a bare invalid response; nothing about any
// student leaks on a miss. Hits are cached in Redis.
func (s *EnrollmentService) VerifyCertificate(ctx context.Context, number string) (*model.VerifyCertificateResponse, error) {
	normalized := NormalizeCertificateNumber(number)
	key := config.CacheKey.CertificateVerifyKey(normalized)

	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var details model.CertificateDetails
		if err := json.Unmarshal(data, &details); err == nil {
			return &model.VerifyCertificateResponse{Valid: true, Details: &details}, nil
		}
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Redis unavailable, verifying against database")
	}

	details, err := s.enrollmentRepo.FindByCertificateNumber(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.VerifyCertificateResponse{Valid: false}, nil
		}
		return nil, err
	}

	if data, err := json.Marshal(details); err == nil {
		if err := s.rdb.Set(ctx, key, data, certVerifyTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to cache certificate verification")
		}
	}
	return &model.VerifyCertificateResponse{Valid: true, Details: details}, nil
}
