package analytics

import "github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"

// DepartmentEntry summarises one department for one month.
type DepartmentEntry struct {
	Department string  `json:"department"`
	AvgKpi     float64 `json:"avg_kpi"`
	Evaluated  int     `json:"evaluated"`
	LateCount  int     `json:"late_count"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
}

// DepartmentAnalyticsResponse is keyed by YYYY-MM month.
type DepartmentAnalyticsResponse map[string][]DepartmentEntry

type DepartmentAnalyticsFilter struct {
	Months int `json:"months" validate:"min=1,max=12"`
}

func (f *DepartmentAnalyticsFilter) Validate() error {
	if f.Months == 0 {
		f.Months = 3 // current and two previous months
	}
	return validator.Struct(f)
}
