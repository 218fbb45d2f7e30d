package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/analytics"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
)

type AnalyticsHandler interface {
	GetDepartmentAnalytics(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// GetDepartmentAnalytics implements AnalyticsHandler.
func (h *analyticsHandlerImpl) GetDepartmentAnalytics(w http.ResponseWriter, r *http.Request) {
	var filter analytics.DepartmentAnalyticsFilter
	if months := r.URL.Query().Get("months"); months != "" {
		n, err := strconv.Atoi(months)
		if err != nil {
			response.BadRequest(w, "months must be a number", nil)
			return
		}
		filter.Months = n
	}

	result, err := h.analyticsService.GetDepartmentAnalytics(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
