package kpi

import "time"

// AttendanceKpiID is the reserved id of the punctuality KPI whose score is
// computed from attendance instead of entered by an evaluator.
const AttendanceKpiID = "K_AUTO_ATT"

// DepartmentAll marks a KPI that applies to every department.
const DepartmentAll = "All"

const (
	MinScore  = 1
	MaxScore  = 5
	MaxWeight = 100
)

// Kpi is a weighted evaluation criterion. Weight is a percentage.
type Kpi struct {
	ID          string
	Department  string
	Name        string
	Description string
	Weight      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (k Kpi) IsAttendance() bool {
	return k.ID == AttendanceKpiID
}

func (k Kpi) AppliesTo(department string) bool {
	return k.Department == DepartmentAll || k.Department == department
}

// Score is one manual evaluation of one KPI for one employee and month.
type Score struct {
	ID          string
	EmployeeID  string
	Month       string
	KpiID       string
	Score       int
	Notes       string
	EvaluatedBy string
	CreatedAt   time.Time
}

// AttendanceScore is the monthly punctuality sub-score derived from
// attendance records and the schedule. It is never stored.
type AttendanceScore struct {
	EmployeeID   string  `json:"employee_id"`
	Month        string  `json:"month"`
	LateCount    int     `json:"late_count"`
	MissingCount int     `json:"missing_count"`
	AbsentCount  int     `json:"absent_count"`
	FinalScore   float64 `json:"final_score"`
	BonusApplied bool    `json:"bonus_applied"`
}

// OverallScore is the blended 0-100 score. Evaluated is false when no weight
// contributed, in which case Score is 0.
type OverallScore struct {
	Score     float64 `json:"score"`
	Evaluated bool    `json:"evaluated"`
}
