package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type KpiHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SubmitScores(w http.ResponseWriter, r *http.Request)
	GetEmployeeScores(w http.ResponseWriter, r *http.Request)
	GetMyPerformance(w http.ResponseWriter, r *http.Request)
	GetEmployeePerformance(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService   kpi.KpiService
	employeeRepo employee.EmployeeRepository
}

func NewKpiHandler(kpiService kpi.KpiService, employeeRepo employee.EmployeeRepository) KpiHandler {
	return &kpiHandlerImpl{
		kpiService:   kpiService,
		employeeRepo: employeeRepo,
	}
}

// List implements KpiHandler. Without a department filter admins get the
// whole catalogue and everyone else the set that applies to them.
func (h *kpiHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	department := r.URL.Query().Get("department")
	if department == "" && !identity.IsAdmin() {
		department = identity.Department
	}

	result, err := h.kpiService.ListKpis(r.Context(), department)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements KpiHandler.
func (h *kpiHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req kpi.CreateKpiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create kpi request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.kpiService.CreateKpi(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "KPI created", result)
}

// Update implements KpiHandler.
func (h *kpiHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req kpi.UpdateKpiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update kpi request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "kpiID")

	result, err := h.kpiService.UpdateKpi(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI updated", result)
}

// SubmitScores implements KpiHandler.
func (h *kpiHandlerImpl) SubmitScores(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req kpi.SubmitScoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode submit scores request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EvaluatorID = identity.EmployeeID

	if req.EmployeeID != "" {
		if err := middleware.CheckTeamScope(r.Context(), h.employeeRepo, identity, req.EmployeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.kpiService.SubmitScores(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI scores saved", result)
}

// GetEmployeeScores implements KpiHandler.
func (h *kpiHandlerImpl) GetEmployeeScores(w http.ResponseWriter, r *http.Request) {
	result, err := h.kpiService.GetScores(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyPerformance implements KpiHandler.
func (h *kpiHandlerImpl) GetMyPerformance(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.kpiService.Evaluate(r.Context(), identity.EmployeeID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeePerformance implements KpiHandler.
func (h *kpiHandlerImpl) GetEmployeePerformance(w http.ResponseWriter, r *http.Request) {
	result, err := h.kpiService.Evaluate(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
