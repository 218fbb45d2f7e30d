package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/config"
	appHTTP "github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/cron"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository"
	analyticsService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/analytics"
	assessmentService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/assessment"
	attendanceService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/attendance"
	departmentService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/department"
	employeeService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/employee"
	feedbackService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/feedback"
	kpiService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/kpi"
	scheduleService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/schedule"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "storage", cfg.App.Storage, "error", err)
		os.Exit(1)
	}
	defer closeRepos()

	loc := cfg.Attendance.Location
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	attendanceSvc := attendanceService.NewAttendanceService(repos.Attendance, repos.Schedule, repos.Employee, hub, attendanceService.Config{
		Location: loc,
		Geofence: cfg.Attendance.Geofence,
	})
	scheduleSvc := scheduleService.NewScheduleService(repos.Schedule, repos.Employee, repos.Transactor, loc)
	kpiSvc := kpiService.NewKpiService(repos.Kpi, repos.Score, repos.Attendance, repos.Schedule, repos.Employee, loc)
	analyticsSvc := analyticsService.NewAnalyticsService(repos.Employee, kpiSvc, loc)
	employeeSvc := employeeService.NewEmployeeService(repos.Employee, repos.Department, repos.Transactor)
	departmentSvc := departmentService.NewDepartmentService(repos.Department, repos.Employee, repos.Kpi, repos.Transactor)
	feedbackSvc := feedbackService.NewFeedbackService(repos.Feedback, repos.Employee)
	selfAssessmentSvc := assessmentService.NewSelfAssessmentService(repos.SelfAssessment, repos.Employee, loc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		repos.Employee,
		appHTTP.NewAttendanceHandler(attendanceSvc, hub),
		appHTTP.NewScheduleHandler(scheduleSvc, repos.Employee),
		appHTTP.NewKpiHandler(kpiSvc, repos.Employee),
		appHTTP.NewAnalyticsHandler(analyticsSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
		appHTTP.NewFeedbackHandler(feedbackSvc, repos.Employee),
		appHTTP.NewSelfAssessmentHandler(selfAssessmentSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "storage", cfg.App.Storage, "timezone", cfg.Attendance.Timezone, "geofence", cfg.Attendance.Geofence.Enabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.App.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hotel-performance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}
