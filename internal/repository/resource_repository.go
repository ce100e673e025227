package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

// ResourceRepository handles learning-resource data access.
type ResourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

// GetByID retrieves a resource by its UUID.
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	res := &model.Resource{}
	err := r.pool.QueryRow(ctx,
		`SELECT r.id, r.title, r.description, r.category, r.type, r.file_url, r.size,
		        r.course_id, c.name, r.upload_date
		 FROM resources r
		 JOIN courses c ON c.id = r.course_id
		 WHERE r.id = $1`, id,
	).Scan(&res.ID, &res.Title, &res.Description, &res.Category, &res.Type, &res.FileURL,
		&res.Size, &res.CourseID, &res.CourseName, &res.UploadDate)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// List retrieves all resources, newest upload first.
func (r *ResourceRepository) List(ctx context.Context) ([]model.Resource, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.title, r.description, r.category, r.type, r.file_url, r.size,
		        r.course_id, c.name, r.upload_date
		 FROM resources r
		 JOIN courses c ON c.id = r.course_id
		 ORDER BY r.upload_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResources(rows)
}

// ListByCourses retrieves resources for the given course set, newest first.
func (r *ResourceRepository) ListByCourses(ctx context.Context, courseIDs []uuid.UUID) ([]model.Resource, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.title, r.description, r.category, r.type, r.file_url, r.size,
		        r.course_id, c.name, r.upload_date
		 FROM resources r
		 JOIN courses c ON c.id = r.course_id
		 WHERE r.course_id = ANY($1)
		 ORDER BY r.upload_date DESC`, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResources(rows)
}

// Create inserts a new resource.
func (r *ResourceRepository) Create(ctx context.Context, res *model.Resource) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO resources (title, description, category, type, file_url, size, course_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, upload_date`,
		res.Title, res.Description, res.Category, res.Type, res.FileURL, res.Size, res.CourseID,
	).Scan(&res.ID, &res.UploadDate)
}

// Update modifies a resource.
func (r *ResourceRepository) Update(ctx context.Context, res *model.Resource) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE resources
		 SET title = $1, description = $2, category = $3, type = $4, file_url = $5, size = $6, course_id = $7
		 WHERE id = $8`,
		res.Title, res.Description, res.Category, res.Type, res.FileURL, res.Size, res.CourseID, res.ID)
	return err
}

// Delete removes a resource. Returns the number of rows deleted.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanResources(rows pgx.Rows) ([]model.Resource, error) {
	var resources []model.Resource
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Description, &res.Category, &res.Type,
			&res.FileURL, &res.Size, &res.CourseID, &res.CourseName, &res.UploadDate); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}
