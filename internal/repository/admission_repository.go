package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

// AdmissionRepository handles admission-form data access.
type AdmissionRepository struct {
	pool *pgxpool.Pool
}

// NewAdmissionRepository creates a new AdmissionRepository.
func NewAdmissionRepository(pool *pgxpool.Pool) *AdmissionRepository {
	return &AdmissionRepository{pool: pool}
}

// Create inserts a new pending admission.
func (r *AdmissionRepository) Create(ctx context.Context, a *model.Admission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admissions (full_name, email, phone, dob, qualification, institution,
		                         year_of_passing, percentage, course_id, study_mode, start_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, status, created_at`,
		a.FullName, a.Email, a.Phone, a.DOB, a.Qualification, a.Institution,
		a.YearOfPassing, a.Percentage, a.CourseID, a.StudyMode, a.StartDate,
	).Scan(&a.ID, &a.Status, &a.CreatedAt)
}

// List retrieves all admissions joined with their courses, newest first.
func (r *AdmissionRepository) List(ctx context.Context) ([]model.Admission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.full_name, a.email, a.phone, a.dob, a.qualification, a.institution,
		        a.year_of_passing, a.percentage, a.course_id, c.name, a.study_mode,
		        a.start_date, a.status, a.created_at
		 FROM admissions a
		 JOIN courses c ON c.id = a.course_id
		 ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admissions []model.Admission
	for rows.Next() {
		var a model.Admission
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.Phone, &a.DOB, &a.Qualification,
			&a.Institution, &a.YearOfPassing, &a.Percentage, &a.CourseID, &a.CourseName,
			&a.StudyMode, &a.StartDate, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		admissions = append(admissions, a)
	}
	return admissions, rows.Err()
}

// UpdateStatus sets an admission's status. Returns rows affected so callers
// can distinguish a missing admission.
func (r *AdmissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.IntakeStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admissions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
