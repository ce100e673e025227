package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles dashboard aggregate queries.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// FranchiseSummary holds the high-level counters for one franchise.
type FranchiseSummary struct {
	TotalStudents      int `json:"total_students"`
	OngoingCourses     int `json:"ongoing_courses"`
	CompletedCourses   int `json:"completed_courses"`
	CertificatesIssued int `json:"certificates_issued"`
}

// GetFranchiseSummary retrieves the headline counts for one franchise.
func (r *DashboardRepository) GetFranchiseSummary(ctx context.Context, franchiseeID uuid.UUID) (*FranchiseSummary, error) {
	s := &FranchiseSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students WHERE franchisee_id = $1),
			(SELECT COUNT(*) FROM enrollments e JOIN students st ON st.id = e.student_id
			  WHERE st.franchisee_id = $1 AND e.status = 'ongoing'),
			(SELECT COUNT(*) FROM enrollments e JOIN students st ON st.id = e.student_id
			  WHERE st.franchisee_id = $1 AND e.status = 'completed'),
			(SELECT COUNT(*) FROM enrollments e JOIN students st ON st.id = e.student_id
			  WHERE st.franchisee_id = $1 AND e.certificate_number IS NOT NULL)`,
		franchiseeID,
	).Scan(&s.TotalStudents, &s.OngoingCourses, &s.CompletedCourses, &s.CertificatesIssued)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CourseEnrollmentCount is one row of the top-courses ranking.
type CourseEnrollmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GetTopCourses retrieves the franchise's most-enrolled courses.
func (r *DashboardRepository) GetTopCourses(ctx context.Context, franchiseeID uuid.UUID, limit int) ([]CourseEnrollmentCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.name, COUNT(*) AS cnt
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 JOIN courses c ON c.id = e.course_id
		 WHERE s.franchisee_id = $1
		 GROUP BY c.name
		 ORDER BY cnt DESC, c.name
		 LIMIT $2`, franchiseeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []CourseEnrollmentCount
	for rows.Next() {
		var c CourseEnrollmentCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		top = append(top, c)
	}
	return top, rows.Err()
}

// UpcomingExam is the reduced exam view shown on the franchise dashboard.
type UpcomingExam struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	Registered int       `json:"registered"`
	CourseName string    `json:"course_name"`
}

// GetUpcomingExams retrieves unpublished exams dated in the future that
// have the franchise's students registered, soonest first.
func (r *DashboardRepository) GetUpcomingExams(ctx context.Context, franchiseeID uuid.UUID, limit int) ([]UpcomingExam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.name, e.exam_date, c.name,
		        (SELECT COUNT(*) FROM exam_registrations er WHERE er.exam_id = e.id)
		 FROM exams e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.exam_date > NOW() AND NOT e.is_published
		   AND EXISTS (SELECT 1 FROM exam_registrations er
		               JOIN students s ON s.id = er.student_id
		               WHERE er.exam_id = e.id AND s.franchisee_id = $1)
		 ORDER BY e.exam_date ASC
		 LIMIT $2`, franchiseeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []UpcomingExam
	for rows.Next() {
		var e UpcomingExam
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.CourseName, &e.Registered); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// MonthlyCount is one month's student intake.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// GetMonthlyGrowth retrieves per-month student creation counts for the
// franchise over the trailing window.
func (r *DashboardRepository) GetMonthlyGrowth(ctx context.Context, franchiseeID uuid.UUID, since time.Time) ([]MonthlyCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(enrollment_date, 'YYYY-MM') AS month, COUNT(*)
		 FROM students
		 WHERE franchisee_id = $1 AND enrollment_date >= $2
		 GROUP BY month
		 ORDER BY month`, franchiseeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var growth []MonthlyCount
	for rows.Next() {
		var m MonthlyCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, err
		}
		growth = append(growth, m)
	}
	return growth, rows.Err()
}

// PortalSummary holds the student portal's headline counts.
type PortalSummary struct {
	EnrolledCount     int `json:"enrolled_count"`
	OngoingCount      int `json:"ongoing_count"`
	CompletedCount    int `json:"completed_count"`
	CertificatesCount int `json:"certificates_count"`
	ResultsCount      int `json:"results_count"`
}

// GetPortalSummary retrieves the dashboard counts for one student.
func (r *DashboardRepository) GetPortalSummary(ctx context.Context, studentID uuid.UUID) (*PortalSummary, error) {
	s := &PortalSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM enrollments WHERE student_id = $1),
			(SELECT COUNT(*) FROM enrollments WHERE student_id = $1 AND status = 'ongoing'),
			(SELECT COUNT(*) FROM enrollments WHERE student_id = $1 AND status = 'completed'),
			(SELECT COUNT(*) FROM enrollments WHERE student_id = $1 AND certificate_number IS NOT NULL),
			(SELECT COUNT(*) FROM exam_records WHERE student_id = $1 AND published_date IS NOT NULL)`,
		studentID,
	).Scan(&s.EnrolledCount, &s.OngoingCount, &s.CompletedCount, &s.CertificatesCount, &s.ResultsCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}
