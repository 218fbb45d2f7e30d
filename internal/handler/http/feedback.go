package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type FeedbackHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	ListForEmployee(w http.ResponseWriter, r *http.Request)
}

type feedbackHandlerImpl struct {
	feedbackService feedback.FeedbackService
	employeeRepo    employee.EmployeeRepository
}

func NewFeedbackHandler(feedbackService feedback.FeedbackService, employeeRepo employee.EmployeeRepository) FeedbackHandler {
	return &feedbackHandlerImpl{
		feedbackService: feedbackService,
		employeeRepo:    employeeRepo,
	}
}

// Submit implements FeedbackHandler.
func (h *feedbackHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req feedback.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode submit feedback request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GivenBy = identity.EmployeeID

	if req.EmployeeID != "" {
		if err := middleware.CheckTeamScope(r.Context(), h.employeeRepo, identity, req.EmployeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.feedbackService.SubmitFeedback(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Feedback saved", result)
}

// ListMy implements FeedbackHandler.
func (h *feedbackHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.feedbackService.ListFeedback(r.Context(), identity.EmployeeID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListForEmployee implements FeedbackHandler.
func (h *feedbackHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.feedbackService.ListFeedback(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
