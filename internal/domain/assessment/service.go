package assessment

import "context"

type SelfAssessmentService interface {
	// Submit stores the caller's assessment, replacing an earlier one for the month.
	Submit(ctx context.Context, req SubmitSelfAssessmentRequest) (SelfAssessmentResponse, error)
	Get(ctx context.Context, employeeID, month string) (SelfAssessmentResponse, error)
}
