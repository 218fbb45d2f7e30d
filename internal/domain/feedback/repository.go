package feedback

import "context"

type FeedbackRepository interface {
	Create(ctx context.Context, f Feedback) (Feedback, error)

	// ListByEmployee returns the employee's feedback, newest first. An empty
	// month returns every month.
	ListByEmployee(ctx context.Context, employeeID, month string) ([]Feedback, error)
}
