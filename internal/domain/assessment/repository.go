package assessment

import "context"

type SelfAssessmentRepository interface {
	// Upsert replaces the (employee, month) assessment.
	Upsert(ctx context.Context, a SelfAssessment) (SelfAssessment, error)

	// GetByEmployeeAndMonth returns nil when nothing was submitted.
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*SelfAssessment, error)
}
