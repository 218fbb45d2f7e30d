package assessment

import "time"

// SelfAssessment is an employee's own reflection on a month. There is at most
// one per employee and month.
type SelfAssessment struct {
	ID         string
	EmployeeID string
	Month      string
	Strengths  string
	Weaknesses string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
