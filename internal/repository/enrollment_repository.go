package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

var (
	ErrAlreadyEnrolled            = errors.New("student already enrolled in this course")
	ErrDuplicateCertificateNumber = errors.New("certificate number already in use")
	ErrEnrollmentNotFound         = errors.New("enrollment not found")
)

// EnrollmentRepository handles enrollment and certificate data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create inserts a new ongoing enrollment. The (student, course) unique
// constraint is the duplicate-enrollment guard; no scan precedes the write.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id, progress, status)
		 VALUES ($1, $2, 0, $3)
		 RETURNING id, enrollment_date`,
		e.StudentID, e.CourseID, model.EnrollmentOngoing,
	).Scan(&e.ID, &e.EnrollmentDate)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyEnrolled
		}
		return err
	}
	e.Progress = 0
	e.Status = model.EnrollmentOngoing
	return nil
}

// GetByStudentCourse retrieves one enrollment by its composite key.
func (r *EnrollmentRepository) GetByStudentCourse(ctx context.Context, studentID, courseID uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	var certFile, certNumber *string
	var certIssued *time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, course_id, enrollment_date, progress, status,
		        completed_date, certificate_file, certificate_number, certificate_issue_date
		 FROM enrollments WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID,
	).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Progress, &e.Status,
		&e.CompletedDate, &certFile, &certNumber, &certIssued)
	if err != nil {
		return nil, err
	}
	attachCertificate(e, certFile, certNumber, certIssued)
	return e, nil
}

// ListByStudent returns a student's enrollments joined with course details,
// in enrollment order.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.student_id, e.course_id, c.name, c.type, e.enrollment_date,
		        e.progress, e.status, e.completed_date,
		        e.certificate_file, e.certificate_number, e.certificate_issue_date
		 FROM enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.student_id = $1
		 ORDER BY e.enrollment_date`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		var certFile, certNumber *string
		var certIssued *time.Time
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.CourseName, &e.CourseType,
			&e.EnrollmentDate, &e.Progress, &e.Status, &e.CompletedDate,
			&certFile, &certNumber, &certIssued); err != nil {
			return nil, err
		}
		attachCertificate(&e, certFile, certNumber, certIssued)
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// SetCertificate records an issued certificate on an enrollment and marks
// it completed in the same statement. The partial unique index on
// certificate_number rejects collisions; callers regenerate and retry.
func (r *EnrollmentRepository) SetCertificate(ctx context.Context, enrollmentID uuid.UUID, cert model.Certificate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments
		 SET certificate_file = $1, certificate_number = $2, certificate_issue_date = $3,
		     status = $4, completed_date = $3
		 WHERE id = $5`,
		cert.File, cert.Number, cert.IssueDate, model.EnrollmentCompleted, enrollmentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCertificateNumber
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

// UpdateProgress sets the progress percentage of one enrollment.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, enrollmentID uuid.UUID, progress int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET progress = $1 WHERE id = $2`, progress, enrollmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

// FindByCertificateNumber resolves a certificate number to its public
// details. The caller normalizes the number before lookup.
func (r *EnrollmentRepository) FindByCertificateNumber(ctx context.Context, number string) (*model.CertificateDetails, error) {
	d := &model.CertificateDetails{}
	err := r.pool.QueryRow(ctx,
		`SELECT s.name, s.registration_number, c.name, e.certificate_number, e.certificate_issue_date
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.certificate_number = $1`, number,
	).Scan(&d.StudentName, &d.RegistrationNumber, &d.CourseName, &d.CertificateNumber, &d.IssueDate)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func attachCertificate(e *model.Enrollment, file, number *string, issued *time.Time) {
	if number == nil || issued == nil {
		return
	}
	cert := &model.Certificate{Number: *number, IssueDate: *issued}
	if file != nil {
		cert.File = *file
	}
	e.Certificate = cert
}
