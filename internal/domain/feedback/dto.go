package feedback

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

type SubmitFeedbackRequest struct {
	GivenBy      string `json:"-" validate:"required"`
	EmployeeID   string `json:"employee_id" validate:"required"`
	Month        string `json:"month" validate:"required,month"`
	FeedbackText string `json:"feedback" validate:"required,max=2000"`
	CoachingPlan string `json:"coaching_plan" validate:"max=2000"`
}

func (r *SubmitFeedbackRequest) Validate() error {
	r.FeedbackText = strings.TrimSpace(r.FeedbackText)
	r.CoachingPlan = strings.TrimSpace(r.CoachingPlan)
	return validator.Struct(r)
}

type FeedbackResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Month        string `json:"month"`
	Feedback     string `json:"feedback"`
	CoachingPlan string `json:"coaching_plan"`
	GivenBy      string `json:"given_by"`
	CreatedAt    string `json:"created_at"`
}

func NewFeedbackResponse(f Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           f.ID,
		EmployeeID:   f.EmployeeID,
		Month:        f.Month,
		Feedback:     f.FeedbackText,
		CoachingPlan: f.CoachingPlan,
		GivenBy:      f.GivenBy,
		CreatedAt:    f.CreatedAt.Format(time.RFC3339),
	}
}
