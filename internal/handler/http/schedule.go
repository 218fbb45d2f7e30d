package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	GetMySchedule(w http.ResponseWriter, r *http.Request)
	GetEmployeeSchedule(w http.ResponseWriter, r *http.Request)
	GetTeamSchedules(w http.ResponseWriter, r *http.Request)
	GetAllSchedules(w http.ResponseWriter, r *http.Request)
	SaveSchedules(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
	employeeRepo    employee.EmployeeRepository
}

func NewScheduleHandler(scheduleService schedule.ScheduleService, employeeRepo employee.EmployeeRepository) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
		employeeRepo:    employeeRepo,
	}
}

// GetMySchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.GetEmployeeSchedule(r.Context(), identity.EmployeeID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetEmployeeSchedule(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeamSchedules implements ScheduleHandler. Department heads default to
// their own department.
func (h *scheduleHandlerImpl) GetTeamSchedules(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	department := r.URL.Query().Get("department")
	if department == "" {
		department = identity.Department
	}
	if err := middleware.CheckDepartmentScope(identity, department); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.GetTeamSchedules(r.Context(), department, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAllSchedules implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetAllSchedules(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveSchedules implements ScheduleHandler.
func (h *scheduleHandlerImpl) SaveSchedules(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.SaveSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode save schedules request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	for _, s := range req.Schedules {
		if err := middleware.CheckTeamScope(r.Context(), h.employeeRepo, identity, s.EmployeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.scheduleService.SaveSchedules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedules saved", result)
}
