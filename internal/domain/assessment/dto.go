package assessment

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

type SubmitSelfAssessmentRequest struct {
	EmployeeID string `json:"-" validate:"required"`
	Month      string `json:"month" validate:"required,month"`
	Strengths  string `json:"strengths" validate:"required,max=2000"`
	Weaknesses string `json:"weaknesses" validate:"required,max=2000"`
}

func (r *SubmitSelfAssessmentRequest) Validate() error {
	r.Strengths = strings.TrimSpace(r.Strengths)
	r.Weaknesses = strings.TrimSpace(r.Weaknesses)
	return validator.Struct(r)
}

type SelfAssessmentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
	UpdatedAt  string `json:"updated_at"`
}

func NewSelfAssessmentResponse(a SelfAssessment) SelfAssessmentResponse {
	return SelfAssessmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Month:      a.Month,
		Strengths:  a.Strengths,
		Weaknesses: a.Weaknesses,
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}
