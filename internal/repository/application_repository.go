package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

// ApplicationRepository handles online application data access.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// Create inserts a new pending application.
func (r *ApplicationRepository) Create(ctx context.Context, a *model.Application) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO applications (name, email, phone, course_id, message, documents)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, applied_date`,
		a.Name, a.Email, a.Phone, a.CourseID, a.Message, a.Documents,
	).Scan(&a.ID, &a.Status, &a.AppliedDate)
}

// GetByID retrieves an application by its UUID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	a := &model.Application{}
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.name, a.email, a.phone, a.course_id, c.name, a.message,
		        a.documents, a.status, a.applied_date
		 FROM applications a
		 JOIN courses c ON c.id = a.course_id
		 WHERE a.id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.CourseID, &a.CourseName,
		&a.Message, &a.Documents, &a.Status, &a.AppliedDate)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListPending retrieves applications awaiting review, newest first.
func (r *ApplicationRepository) ListPending(ctx context.Context) ([]model.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.name, a.email, a.phone, a.course_id, c.name, a.message,
		        a.documents, a.status, a.applied_date
		 FROM applications a
		 JOIN courses c ON c.id = a.course_id
		 WHERE a.status = $1
		 ORDER BY a.applied_date DESC`, model.IntakePending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []model.Application
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.CourseID, &a.CourseName,
			&a.Message, &a.Documents, &a.Status, &a.AppliedDate); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// UpdateStatus sets an application's status. Returns rows affected.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.IntakeStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
