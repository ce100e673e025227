package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// growthMonths is the trailing window shown on the franchise growth chart.
const growthMonths = 6

// FranchiseDashboard is the aggregate view served to a franchisee's home
// screen in one request.
type FranchiseDashboard struct {
	Summary       *repository.FranchiseSummary       `json:"summary"`
	TopCourses    []repository.CourseEnrollmentCount `json:"top_courses"`
	UpcomingExams []repository.UpcomingExam          `json:"upcoming_exams"`
	MonthlyGrowth []repository.MonthlyCount          `json:"monthly_growth"`
}

// StudentDashboard is the aggregate view served to the student portal home.
type StudentDashboard struct {
	Summary *repository.PortalSummary `json:"summary"`
	Results []model.StudentExamResult `json:"results"`
}

// DashboardService assembles read-only aggregates for the franchise and
// student dashboards.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	examRepo      *repository.ExamRepository
	log           zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, examRepo *repository.ExamRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		examRepo:      examRepo,
		log:           log.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetFranchiseDashboard assembles the franchisee home view. Admins may pass
// any franchisee ID; franchisees always get their own.
func (s *DashboardService) GetFranchiseDashboard(ctx context.Context, actor authz.Actor, franchiseeID uuid.UUID) (*FranchiseDashboard, error) {
	if err := authz.RequireStaff(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		franchiseeID = actor.ID
	}

	summary, err := s.dashboardRepo.GetFranchiseSummary(ctx, franchiseeID)
	if err != nil {
		return nil, err
	}
	topCourses, err := s.dashboardRepo.GetTopCourses(ctx, franchiseeID, 5)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.dashboardRepo.GetUpcomingExams(ctx, franchiseeID, 5)
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, -growthMonths, 0)
	growth, err := s.dashboardRepo.GetMonthlyGrowth(ctx, franchiseeID, since)
	if err != nil {
		return nil, err
	}

	if topCourses == nil {
		topCourses = []repository.CourseEnrollmentCount{}
	}
	if upcoming == nil {
		upcoming = []repository.UpcomingExam{}
	}
	if growth == nil {
		growth = []repository.MonthlyCount{}
	}
	return &FranchiseDashboard{
		Summary:       summary,
		TopCourses:    topCourses,
		UpcomingExams: upcoming,
		MonthlyGrowth: growth,
	}, nil
}

// GetStudentDashboard assembles the portal home view for one student.
func (s *DashboardService) GetStudentDashboard(ctx context.Context, studentID uuid.UUID) (*StudentDashboard, error) {
	summary, err := s.dashboardRepo.GetPortalSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	results, err := s.examRepo.ListPublishedResults(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.StudentExamResult{}
	}
	return &StudentDashboard{Summary: summary, Results: results}, nil
}
