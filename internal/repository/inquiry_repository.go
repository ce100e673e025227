package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

// InquiryRepository handles contact-form data access.
type InquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository creates a new InquiryRepository.
func NewInquiryRepository(pool *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{pool: pool}
}

// Create inserts a new inquiry.
func (r *InquiryRepository) Create(ctx context.Context, i *model.Inquiry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO inquiries (name, email, phone, course_interest, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		i.Name, i.Email, i.Phone, i.CourseInterest, i.Message,
	).Scan(&i.ID, &i.CreatedAt)
}

// List retrieves all inquiries, newest first.
func (r *InquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, course_interest, message, created_at
		 FROM inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []model.Inquiry
	for rows.Next() {
		var i model.Inquiry
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.CourseInterest, &i.Message, &i.CreatedAt); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, rows.Err()
}
