package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

type SelfAssessmentServiceImpl struct {
	assessmentRepo assessment.SelfAssessmentRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
}

func NewSelfAssessmentService(assessmentRepo assessment.SelfAssessmentRepository, employeeRepo employee.EmployeeRepository, loc *time.Location) assessment.SelfAssessmentService {
	return &SelfAssessmentServiceImpl{
		assessmentRepo: assessmentRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// parseMonth parses YYYY-MM, defaulting to the current month.
func (s *SelfAssessmentServiceImpl) parseMonth(month string) (calendar.Month, error) {
	if month == "" {
		return calendar.MonthOf(s.now().In(s.loc)), nil
	}
	return validator.MonthParam("month", month)
}

// Submit implements assessment.SelfAssessmentService.
func (s *SelfAssessmentServiceImpl) Submit(ctx context.Context, req assessment.SubmitSelfAssessmentRequest) (assessment.SelfAssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assessment.SelfAssessmentResponse{}, err
	}

	m, err := calendar.ParseMonth(req.Month)
	if err != nil {
		return assessment.SelfAssessmentResponse{}, err
	}
	if current := calendar.MonthOf(s.now().In(s.loc)); current.Before(m) {
		return assessment.SelfAssessmentResponse{}, assessment.ErrFutureMonth
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return assessment.SelfAssessmentResponse{}, err
	}

	saved, err := s.assessmentRepo.Upsert(ctx, assessment.SelfAssessment{
		EmployeeID: req.EmployeeID,
		Month:      m.String(),
		Strengths:  req.Strengths,
		Weaknesses: req.Weaknesses,
	})
	if err != nil {
		return assessment.SelfAssessmentResponse{}, fmt.Errorf("failed to save self-assessment: %w", err)
	}

	slog.Info("Self-assessment saved", "employee_id", saved.EmployeeID, "month", saved.Month)
	return assessment.NewSelfAssessmentResponse(saved), nil
}

// Get implements assessment.SelfAssessmentService.
func (s *SelfAssessmentServiceImpl) Get(ctx context.Context, employeeID, month string) (assessment.SelfAssessmentResponse, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return assessment.SelfAssessmentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return assessment.SelfAssessmentResponse{}, err
	}

	a, err := s.assessmentRepo.GetByEmployeeAndMonth(ctx, employeeID, m.String())
	if err != nil {
		return assessment.SelfAssessmentResponse{}, fmt.Errorf("failed to get self-assessment: %w", err)
	}
	if a == nil {
		return assessment.SelfAssessmentResponse{}, assessment.ErrSelfAssessmentNotFound
	}

	return assessment.NewSelfAssessmentResponse(*a), nil
}
