package feedback

import "context"

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (FeedbackResponse, error)
	ListFeedback(ctx context.Context, employeeID, month string) ([]FeedbackResponse, error)
}
