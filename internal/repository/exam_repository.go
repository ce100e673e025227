package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

var ErrUnknownStudent = errors.New("referenced student does not exist")

// ExamRepository handles exam, roster and result data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// GetByID retrieves an exam by its UUID, joined with its course.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT e.id, e.name, e.subject, e.exam_date, e.deadline, e.start_time,
		        e.duration_minutes, e.total_marks, e.passing_marks, e.course_id,
		        c.name, c.type, e.created_by, e.created_by_role,
		        e.is_published, e.published_at, e.created_at
		 FROM exams e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Subject, &e.Date, &e.Deadline, &e.StartTime,
		&e.DurationMinutes, &e.TotalMarks, &e.PassingMarks, &e.CourseID,
		&e.CourseName, &e.CourseType, &e.CreatedBy, &e.CreatedByRole,
		&e.IsPublished, &e.PublishedAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new exam. The deadline<=date window is validated by the
// service before this call and backstopped by a table CHECK constraint.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (name, subject, exam_date, deadline, start_time, duration_minutes,
		                    total_marks, passing_marks, course_id, created_by, created_by_role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, is_published, created_at`,
		e.Name, e.Subject, e.Date, e.Deadline, e.StartTime, e.DurationMinutes,
		e.TotalMarks, e.PassingMarks, e.CourseID, e.CreatedBy, e.CreatedByRole,
	).Scan(&e.ID, &e.IsPublished, &e.CreatedAt)
}

// List retrieves exams joined with their courses. With openOnly set, only
// exams whose deadline has not passed are returned, soonest deadline first;
// otherwise all exams, latest date first.
func (r *ExamRepository) List(ctx context.Context, openOnly bool, now time.Time) ([]model.Exam, error) {
	query := `SELECT e.id, e.name, e.subject, e.exam_date, e.deadline, e.start_time,
	                 e.duration_minutes, e.total_marks, e.passing_marks, e.course_id,
	                 c.name, c.type, e.created_by, e.created_by_role,
	                 e.is_published, e.published_at, e.created_at
	          FROM exams e
	          JOIN courses c ON c.id = e.course_id`
	var args []interface{}
	if openOnly {
		query += ` WHERE e.deadline >= $1 ORDER BY e.deadline ASC`
		args = append(args, now)
	} else {
		query += ` ORDER BY e.exam_date DESC`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

// ListByFranchise retrieves exams that have at least one of the given
// franchise's students on the roster, latest date first.
func (r *ExamRepository) ListByFranchise(ctx context.Context, franchiseeID uuid.UUID) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT e.id, e.name, e.subject, e.exam_date, e.deadline, e.start_time,
		        e.duration_minutes, e.total_marks, e.passing_marks, e.course_id,
		        c.name, c.type, e.created_by, e.created_by_role,
		        e.is_published, e.published_at, e.created_at
		 FROM exams e
		 JOIN courses c ON c.id = e.course_id
		 JOIN exam_registrations er ON er.exam_id = e.id
		 JOIN students s ON s.id = er.student_id
		 WHERE s.franchisee_id = $1
		 ORDER BY e.exam_date DESC`, franchiseeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

// AddRegistration adds one student to the exam roster and seeds the
// course-linked exam record. Both inserts are ON CONFLICT DO NOTHING, so
// the operation is an atomic set-add: idempotent, no lost updates under
// concurrent registration. Returns whether the roster actually grew.
func (r *ExamRepository) AddRegistration(ctx context.Context, examID, studentID, courseID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO exam_registrations (exam_id, student_id)
		 VALUES ($1, $2)
		 ON CONFLICT (exam_id, student_id) DO NOTHING`,
		examID, studentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, ErrUnknownStudent
		}
		return false, err
	}
	added := tag.RowsAffected() > 0

	// Seed the student's exam record with no marks yet; publication fills it.
	_, err = r.pool.Exec(ctx,
		`INSERT INTO exam_records (student_id, exam_id, course_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, exam_id) DO NOTHING`,
		studentID, examID, courseID)
	if err != nil {
		return added, err
	}
	return added, nil
}

// ListRegisteredIDs returns the set of student IDs on an exam roster.
func (r *ExamRepository) ListRegisteredIDs(ctx context.Context, examID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id FROM exam_registrations WHERE exam_id = $1`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ListRoster returns the students registered for an exam, optionally
// restricted to one franchise, with the owning franchise name attached.
func (r *ExamRepository) ListRoster(ctx context.Context, examID uuid.UUID, franchiseeID *uuid.UUID) ([]model.RosterStudent, error) {
	query := `SELECT s.id, s.name, s.registration_number, COALESCE(u.name, '')
	          FROM exam_registrations er
	          JOIN students s ON s.id = er.student_id
	          LEFT JOIN users u ON u.id = s.franchisee_id
	          WHERE er.exam_id = $1`
	args := []interface{}{examID}
	if franchiseeID != nil {
		query += ` AND s.franchisee_id = $2`
		args = append(args, *franchiseeID)
	}
	query += ` ORDER BY s.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []model.RosterStudent
	for rows.Next() {
		var s model.RosterStudent
		if err := rows.Scan(&s.ID, &s.Name, &s.RegistrationNumber, &s.FranchiseeName); err != nil {
			return nil, err
		}
		roster = append(roster, s)
	}
	return roster, rows.Err()
}

// UpsertRecord writes one student's marks, grade and publication time as a
// single atomic statement keyed on (student, exam). Re-publication
// overwrites marks and grade and refreshes the publication time, so the
// operation is idempotent per student and last-write-wins across
// concurrent publishes.
func (r *ExamRepository) UpsertRecord(ctx context.Context, rec *model.ExamRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_records (student_id, exam_id, course_id, marks, grade, published_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (student_id, exam_id) DO UPDATE
		 SET marks = EXCLUDED.marks,
		     grade = EXCLUDED.grade,
		     published_date = EXCLUDED.published_date
		 RETURNING id`,
		rec.StudentID, rec.ExamID, rec.CourseID, rec.Marks, rec.Grade, rec.PublishedDate,
	).Scan(&rec.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownStudent
		}
		return err
	}
	return nil
}

// MarkPublished flips the exam to its terminal published state. The flag is
// monotonic: there is no unpublish.
func (r *ExamRepository) MarkPublished(ctx context.Context, examID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET is_published = TRUE, published_at = $1 WHERE id = $2`,
		at, examID)
	return err
}

// ListRecordsByStudent returns a student's exam records, registration order.
func (r *ExamRepository) ListRecordsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.ExamRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, exam_id, course_id, marks, COALESCE(grade, ''), published_date
		 FROM exam_records WHERE student_id = $1
		 ORDER BY id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ExamRecord
	for rows.Next() {
		var rec model.ExamRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.ExamID, &rec.CourseID,
			&rec.Marks, &rec.Grade, &rec.PublishedDate); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListPublishedResults returns a student's published results joined with
// exam and course details, newest publication first.
func (r *ExamRepository) ListPublishedResults(ctx context.Context, studentID uuid.UUID) ([]model.StudentExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rec.exam_id, e.name, e.subject, rec.marks, e.total_marks,
		        rec.grade, rec.published_date, c.name
		 FROM exam_records rec
		 JOIN exams e ON e.id = rec.exam_id
		 JOIN courses c ON c.id = rec.course_id
		 WHERE rec.student_id = $1 AND rec.published_date IS NOT NULL
		 ORDER BY rec.published_date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.StudentExamResult
	for rows.Next() {
		var res model.StudentExamResult
		if err := rows.Scan(&res.ExamID, &res.ExamName, &res.Subject, &res.Marks,
			&res.TotalMarks, &res.Grade, &res.PublishedDate, &res.CourseName); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func scanExams(rows pgx.Rows) ([]model.Exam, error) {
	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.Subject, &e.Date, &e.Deadline, &e.StartTime,
			&e.DurationMinutes, &e.TotalMarks, &e.PassingMarks, &e.CourseID,
			&e.CourseName, &e.CourseType, &e.CreatedBy, &e.CreatedByRole,
			&e.IsPublished, &e.PublishedAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
