package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vesdm/institute-backend/internal/config"
	"github.com/vesdm/institute-backend/internal/handler"
	"github.com/vesdm/institute-backend/internal/middleware"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/response"
	"github.com/vesdm/institute-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Course      *handler.CourseHandler
	Student     *handler.StudentHandler
	Exam        *handler.ExamHandler
	Resource    *handler.ResourceHandler
	Admission   *handler.AdmissionHandler
	Application *handler.ApplicationHandler
	Inquiry     *handler.InquiryHandler
	Dashboard   *handler.DashboardHandler
	Portal      *handler.PortalHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded files statically with aggressive caching (1 year).
	// Filenames are timestamp-prefixed, so stale caches never bite.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiters for the unauthenticated surface (per IP).
	authLimiter := middleware.NewRateLimiter(20, time.Minute)
	formLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.GET("/courses", handlers.Course.ListCourses)
		public.GET("/courses/:course_id", handlers.Course.GetCourse)
		public.POST("/verify-certificate", authLimiter.Middleware(), handlers.Student.VerifyCertificate)
		public.POST("/student-access", authLimiter.Middleware(), handlers.Student.AccessByRegistrationNumber)

		forms := public.Group("")
		forms.Use(formLimiter.Middleware())
		{
			forms.POST("/admissions", handlers.Admission.SubmitAdmission)
			forms.POST("/applications", handlers.Application.SubmitApplication)
			forms.POST("/inquiries", handlers.Inquiry.SubmitInquiry)
		}
	}

	// ─── 2. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/setup", authLimiter.Middleware(), handlers.Auth.Setup)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 3. Staff Group (Admin + Franchisee) ───────────────────────────
	staffAPI := router.Group("/api/v1")
	staffAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleAdmin, model.RoleFranchisee),
	)
	{
		staffAPI.GET("/students", handlers.Student.ListStudents)
		staffAPI.POST("/students", handlers.Student.CreateStudent)
		staffAPI.GET("/students/:student_id", handlers.Student.GetStudent)
		staffAPI.PUT("/students/:student_id", handlers.Student.UpdateStudent)
		staffAPI.POST("/students/:student_id/documents", handlers.Student.UploadDocuments)
		staffAPI.POST("/students/enroll", handlers.Student.EnrollExisting)
		staffAPI.PUT("/students/:student_id/courses/:course_id/progress", handlers.Student.UpdateProgress)
		staffAPI.POST("/students/:student_id/courses/:course_id/certificate", handlers.Student.IssueCertificate)

		staffAPI.GET("/exams", handlers.Exam.ListExams)
		staffAPI.GET("/exams/:exam_id", handlers.Exam.GetExam)
		staffAPI.POST("/exams/:exam_id/registrations", handlers.Exam.RegisterStudents)
		staffAPI.GET("/exams/:exam_id/registration-status", handlers.Exam.GetRegistrationStatus)
		staffAPI.GET("/exams/:exam_id/roster", handlers.Exam.GetRoster)

		staffAPI.GET("/resources", handlers.Resource.ListResources)

		staffAPI.GET("/franchise/dashboard", handlers.Dashboard.GetFranchiseDashboard)
	}

	// ─── 4. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleAdmin),
	)
	{
		adminAPI.POST("/franchisees", handlers.User.CreateFranchisee)
		adminAPI.GET("/franchisees", handlers.User.ListFranchisees)

		adminAPI.POST("/courses", handlers.Course.CreateCourse)
		adminAPI.PUT("/courses/:course_id", handlers.Course.UpdateCourse)
		adminAPI.DELETE("/courses/:course_id", handlers.Course.DeleteCourse)

		adminAPI.POST("/exams", handlers.Exam.CreateExam)
		adminAPI.POST("/exams/:exam_id/publish", handlers.Exam.PublishResults)

		adminAPI.POST("/resources", handlers.Resource.CreateResource)
		adminAPI.PUT("/resources/:resource_id", handlers.Resource.UpdateResource)
		adminAPI.DELETE("/resources/:resource_id", handlers.Resource.DeleteResource)

		adminAPI.GET("/admissions", handlers.Admission.ListAdmissions)
		adminAPI.PUT("/admissions/:admission_id/status", handlers.Admission.UpdateAdmissionStatus)

		adminAPI.GET("/applications", handlers.Application.ListPendingApplications)
		adminAPI.POST("/applications/:application_id/approve", handlers.Application.ApproveApplication)
		adminAPI.POST("/applications/:application_id/reject", handlers.Application.RejectApplication)

		adminAPI.GET("/inquiries", handlers.Inquiry.ListInquiries)
	}

	// ─── 5. Student Portal Group ───────────────────────────────────────
	portalAPI := router.Group("/api/v1/portal")
	portalAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleStudent),
	)
	{
		portalAPI.GET("/me", handlers.Portal.GetProfile)
		portalAPI.PUT("/me", handlers.Portal.UpdateProfile)
		portalAPI.GET("/courses", handlers.Portal.GetCourses)
		portalAPI.GET("/results", handlers.Portal.GetResults)
		portalAPI.GET("/dashboard", handlers.Portal.GetDashboard)
		portalAPI.GET("/resources", handlers.Portal.GetResources)
	}

	return router
}
