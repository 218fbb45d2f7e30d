package feedback

import "time"

// Feedback is a coaching note a manager writes for an employee about a month.
type Feedback struct {
	ID           string
	EmployeeID   string
	Month        string
	FeedbackText string
	CoachingPlan string
	GivenBy      string
	CreatedAt    time.Time
}
