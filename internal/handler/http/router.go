package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	employeeRepo employee.EmployeeRepository,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	kpiHandler KpiHandler,
	analyticsHandler AnalyticsHandler,
	employeeHandler EmployeeHandler,
	departmentHandler DepartmentHandler,
	feedbackHandler FeedbackHandler,
	selfAssessmentHandler SelfAssessmentHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	managers := middleware.RequireRole(employee.RoleAdmin, employee.RoleDeptHead)
	adminOnly := middleware.RequireRole(employee.RoleAdmin)
	scoped := middleware.EmployeeScope(employeeRepo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/me", employeeHandler.GetMe)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{employeeID}", employeeHandler.Get)
				r.Put("/{employeeID}", employeeHandler.Update)
				r.Delete("/{employeeID}", employeeHandler.Delete)
			})
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", departmentHandler.List)
			r.Get("/{departmentID}", departmentHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", departmentHandler.Create)
				r.Put("/{departmentID}", departmentHandler.Update)
				r.Delete("/{departmentID}", departmentHandler.Delete)
				r.Post("/{departmentID}/positions", departmentHandler.AddPosition)
				r.Put("/{departmentID}/positions/{position}", departmentHandler.RenamePosition)
				r.Delete("/{departmentID}/positions/{position}", departmentHandler.DeletePosition)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", attendanceHandler.CheckIn)
			r.Post("/check-out", attendanceHandler.CheckOut)
			r.Get("/my", attendanceHandler.GetMyAttendance)

			r.With(managers, scoped).Get("/employees/{employeeID}", attendanceHandler.GetEmployeeAttendance)
			r.With(managers).Get("/stream", attendanceHandler.Stream)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/my", scheduleHandler.GetMySchedule)

			r.Group(func(r chi.Router) {
				r.Use(managers)
				r.With(scoped).Get("/employees/{employeeID}", scheduleHandler.GetEmployeeSchedule)
				r.Get("/team", scheduleHandler.GetTeamSchedules)
				r.Put("/", scheduleHandler.SaveSchedules)
			})

			r.With(adminOnly).Get("/", scheduleHandler.GetAllSchedules)
		})

		r.Route("/kpis", func(r chi.Router) {
			r.Get("/", kpiHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", kpiHandler.Create)
				r.Put("/{kpiID}", kpiHandler.Update)
			})

			r.Route("/scores", func(r chi.Router) {
				r.Use(managers)
				r.Post("/", kpiHandler.SubmitScores)
				r.With(scoped).Get("/employees/{employeeID}", kpiHandler.GetEmployeeScores)
			})
		})

		r.Route("/performance", func(r chi.Router) {
			r.Get("/my", kpiHandler.GetMyPerformance)
			r.With(managers, scoped).Get("/employees/{employeeID}", kpiHandler.GetEmployeePerformance)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Get("/my", feedbackHandler.ListMy)

			r.Group(func(r chi.Router) {
				r.Use(managers)
				r.Post("/", feedbackHandler.Submit)
				r.With(scoped).Get("/employees/{employeeID}", feedbackHandler.ListForEmployee)
			})
		})

		r.Route("/self-assessments", func(r chi.Router) {
			r.Get("/my", selfAssessmentHandler.GetMy)
			r.Put("/my", selfAssessmentHandler.SubmitMy)
			r.With(managers, scoped).Get("/employees/{employeeID}", selfAssessmentHandler.GetForEmployee)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/departments", analyticsHandler.GetDepartmentAnalytics)
		})
	})

	return r
}
