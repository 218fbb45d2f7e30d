package feedback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

type FeedbackServiceImpl struct {
	feedbackRepo feedback.FeedbackRepository
	employeeRepo employee.EmployeeRepository
}

func NewFeedbackService(feedbackRepo feedback.FeedbackRepository, employeeRepo employee.EmployeeRepository) feedback.FeedbackService {
	return &FeedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		employeeRepo: employeeRepo,
	}
}

// SubmitFeedback implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) SubmitFeedback(ctx context.Context, req feedback.SubmitFeedbackRequest) (feedback.FeedbackResponse, error) {
	if err := req.Validate(); err != nil {
		return feedback.FeedbackResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return feedback.FeedbackResponse{}, err
	}

	created, err := s.feedbackRepo.Create(ctx, feedback.Feedback{
		EmployeeID:   req.EmployeeID,
		Month:        req.Month,
		FeedbackText: req.FeedbackText,
		CoachingPlan: req.CoachingPlan,
		GivenBy:      req.GivenBy,
	})
	if err != nil {
		return feedback.FeedbackResponse{}, fmt.Errorf("failed to save feedback: %w", err)
	}

	slog.Info("Feedback submitted", "employee_id", created.EmployeeID, "month", created.Month, "by", created.GivenBy)
	return feedback.NewFeedbackResponse(created), nil
}

// ListFeedback implements feedback.FeedbackService. An empty month lists every
// month, newest first.
func (s *FeedbackServiceImpl) ListFeedback(ctx context.Context, employeeID, month string) ([]feedback.FeedbackResponse, error) {
	if month != "" {
		if _, err := validator.MonthParam("month", month); err != nil {
			return nil, err
		}
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	items, err := s.feedbackRepo.ListByEmployee(ctx, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	resp := make([]feedback.FeedbackResponse, 0, len(items))
	for _, f := range items {
		resp = append(resp, feedback.NewFeedbackResponse(f))
	}
	return resp, nil
}
