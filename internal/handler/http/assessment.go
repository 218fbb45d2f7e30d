package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type SelfAssessmentHandler interface {
	SubmitMy(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	GetForEmployee(w http.ResponseWriter, r *http.Request)
}

type selfAssessmentHandlerImpl struct {
	assessmentService assessment.SelfAssessmentService
}

func NewSelfAssessmentHandler(assessmentService assessment.SelfAssessmentService) SelfAssessmentHandler {
	return &selfAssessmentHandlerImpl{
		assessmentService: assessmentService,
	}
}

// SubmitMy implements SelfAssessmentHandler.
func (h *selfAssessmentHandlerImpl) SubmitMy(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req assessment.SubmitSelfAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode self-assessment request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = identity.EmployeeID

	result, err := h.assessmentService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Self-assessment saved", result)
}

// GetMy implements SelfAssessmentHandler.
func (h *selfAssessmentHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assessmentService.Get(r.Context(), identity.EmployeeID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetForEmployee implements SelfAssessmentHandler.
func (h *selfAssessmentHandlerImpl) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.assessmentService.Get(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
