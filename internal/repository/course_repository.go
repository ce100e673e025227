package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

// CourseRepository handles course catalog data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course by its UUID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, type, description, duration, fee, eligibility, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Type, &c.Description, &c.Duration, &c.Fee, &c.Eligibility, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all courses ordered by name.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, description, duration, fee, eligibility, created_at, updated_at
		 FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Description, &c.Duration, &c.Fee, &c.Eligibility, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, type, description, duration, fee, eligibility)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Type, c.Description, c.Duration, c.Fee, c.Eligibility,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET name = $1, type = $2, description = $3, duration = $4, fee = $5, eligibility = $6, updated_at = NOW()
		 WHERE id = $7`,
		c.Name, c.Type, c.Description, c.Duration, c.Fee, c.Eligibility, c.ID)
	return err
}

// HasDependents reports whether any enrollment, exam or resource still
// references the course. Deletion is refused while this is true.
func (r *CourseRepository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	var dependent bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1)
		     OR EXISTS (SELECT 1 FROM exams WHERE course_id = $1)
		     OR EXISTS (SELECT 1 FROM resources WHERE course_id = $1)`, id,
	).Scan(&dependent)
	return dependent, err
}

// Delete removes a course. Returns the number of rows deleted.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
