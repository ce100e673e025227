package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vesdm/institute-backend/internal/model"
)

var ErrDuplicateRegistrationNumber = errors.New("registration number already assigned")

// registrationCounterID is the single counter row backing student
// registration numbers.
const registrationCounterID = "studentReg"

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// NextRegistrationSeq atomically advances the registration counter and
// returns the new sequence value. The upsert form keeps the increment a
// single statement so concurrent student creations serialize on the row;
// a read-then-write would race.
func (r *StudentRepository) NextRegistrationSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO counters (id, seq) VALUES ($1, 1)
		 ON CONFLICT (id) DO UPDATE SET seq = counters.seq + 1
		 RETURNING seq`, registrationCounterID,
	).Scan(&seq)
	return seq, err
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, registration_number, name, email, phone, year, enrollment_date,
		        franchisee_id, user_id, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.RegistrationNumber, &s.Name, &s.Email, &s.Phone, &s.Year,
		&s.EnrollmentDate, &s.FranchiseeID, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByUserID retrieves the student linked to a self-service login account.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, registration_number, name, email, phone, year, enrollment_date,
		        franchisee_id, user_id, created_at, updated_at
		 FROM students WHERE user_id = $1`, userID,
	).Scan(&s.ID, &s.RegistrationNumber, &s.Name, &s.Email, &s.Phone, &s.Year,
		&s.EnrollmentDate, &s.FranchiseeID, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByRegistrationNumber retrieves a student by their permanent identifier.
func (r *StudentRepository) GetByRegistrationNumber(ctx context.Context, regNum string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, registration_number, name, email, phone, year, enrollment_date,
		        franchisee_id, user_id, created_at, updated_at
		 FROM students WHERE registration_number = $1`, regNum,
	).Scan(&s.ID, &s.RegistrationNumber, &s.Name, &s.Email, &s.Phone, &s.Year,
		&s.EnrollmentDate, &s.FranchiseeID, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves students, optionally scoped to one franchise, newest first.
func (r *StudentRepository) List(ctx context.Context, franchiseeID *uuid.UUID) ([]model.Student, error) {
	query := `SELECT id, registration_number, name, email, phone, year, enrollment_date,
	                 franchisee_id, user_id, created_at, updated_at
	          FROM students`
	var args []interface{}
	if franchiseeID != nil {
		query += ` WHERE franchisee_id = $1`
		args = append(args, *franchiseeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.RegistrationNumber, &s.Name, &s.Email, &s.Phone, &s.Year,
			&s.EnrollmentDate, &s.FranchiseeID, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Create inserts a new student. The registration number must already be
// assigned; a duplicate indicates a counter misuse and is surfaced as such.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (registration_number, name, email, phone, year, franchisee_id, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, enrollment_date, created_at, updated_at`,
		s.RegistrationNumber, s.Name, s.Email, s.Phone, s.Year, s.FranchiseeID, s.UserID,
	).Scan(&s.ID, &s.EnrollmentDate, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRegistrationNumber
		}
		return err
	}
	return nil
}

// Update modifies a student's profile fields. The registration number is
// immutable and never touched here.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, email = $2, phone = $3, year = $4, updated_at = NOW()
		 WHERE id = $5`,
		s.Name, s.Email, s.Phone, s.Year, s.ID)
	return err
}

// AddDocuments records uploaded document filenames for a student.
func (r *StudentRepository) AddDocuments(ctx context.Context, studentID uuid.UUID, fileNames []string) error {
	for _, name := range fileNames {
		if _, err := r.pool.Exec(ctx,
			`INSERT INTO student_documents (student_id, file_name) VALUES ($1, $2)`,
			studentID, name); err != nil {
			return err
		}
	}
	return nil
}

// ListDocuments returns a student's document filenames, newest first.
func (r *StudentRepository) ListDocuments(ctx context.Context, studentID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT file_name FROM student_documents WHERE student_id = $1 ORDER BY uploaded_at DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		docs = append(docs, name)
	}
	return docs, rows.Err()
}

// ListRosterByFranchisee returns the reduced roster view of one franchise's
// students, ordered by name.
func (r *StudentRepository) ListRosterByFranchisee(ctx context.Context, franchiseeID uuid.UUID) ([]model.RosterStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, registration_number
		 FROM students WHERE franchisee_id = $1
		 ORDER BY name`, franchiseeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []model.RosterStudent
	for rows.Next() {
		var s model.RosterStudent
		if err := rows.Scan(&s.ID, &s.Name, &s.RegistrationNumber); err != nil {
			return nil, err
		}
		roster = append(roster, s)
	}
	return roster, rows.Err()
}

// Exists reports whether a student row exists.
func (r *StudentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
