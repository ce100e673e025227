package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/config"
	"github.com/vesdm/institute-backend/internal/database"
	"github.com/vesdm/institute-backend/internal/handler"
	"github.com/vesdm/institute-backend/internal/logger"
	"github.com/vesdm/institute-backend/internal/repository"
	"github.com/vesdm/institute-backend/internal/router"
	"github.com/vesdm/institute-backend/internal/service"
	"github.com/vesdm/institute-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting VESDM Institute Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	admissionRepo := repository.NewAdmissionRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo)
	userService := service.NewUserService(userRepo, authService, log)
	courseService := service.NewCourseService(courseRepo, log)
	studentService := service.NewStudentService(studentRepo, enrollmentRepo, examRepo, courseRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, rdb, log)
	examService := service.NewExamService(examRepo, studentRepo, courseRepo, rdb, log)
	mediaService := service.NewMediaService(cfg)
	resourceService := service.NewResourceService(resourceRepo, courseRepo, enrollmentRepo, log)
	admissionService := service.NewAdmissionService(admissionRepo, courseRepo, log)
	applicationService := service.NewApplicationService(applicationRepo, studentRepo, enrollmentRepo, courseRepo, log)
	inquiryService := service.NewInquiryService(inquiryRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, examRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Course:      handler.NewCourseHandler(courseService),
		Student:     handler.NewStudentHandler(studentService, enrollmentService, mediaService),
		Exam:        handler.NewExamHandler(examService),
		Resource:    handler.NewResourceHandler(resourceService, mediaService),
		Admission:   handler.NewAdmissionHandler(admissionService),
		Application: handler.NewApplicationHandler(applicationService, mediaService),
		Inquiry:     handler.NewInquiryHandler(inquiryService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Portal:      handler.NewPortalHandler(studentService, resourceService, dashboardService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
