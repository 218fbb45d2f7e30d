package schedule

import (
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
)

// Default shift used when no schedule has been saved for a month.
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

type Status string

const (
	StatusWorkday Status = "workday"
	StatusDayOff  Status = "day_off"
	StatusOnLeave Status = "on_leave"
)

var StatusValues = []string{
	string(StatusWorkday),
	string(StatusDayOff),
	string(StatusOnLeave),
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWorkday, StatusDayOff, StatusOnLeave:
		return true
	}
	return false
}

// Day is one day's work expectation. StartTime and EndTime are set only for
// workdays.
type Day struct {
	Status    Status  `json:"status"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

func Workday(start, end string) Day {
	return Day{Status: StatusWorkday, StartTime: &start, EndTime: &end}
}

func Off(status Status) Day {
	return Day{Status: status}
}

// DefaultDay returns the generated expectation for a date: weekends off,
// weekdays on the default shift.
func DefaultDay(date time.Time) Day {
	if calendar.IsWeekend(date) {
		return Off(StatusDayOff)
	}
	return Workday(DefaultStartTime, DefaultEndTime)
}

// EmployeeSchedule is the month calendar owned by one (employee, month) pair.
// Days is keyed by two digit day of month.
type EmployeeSchedule struct {
	ID         string
	EmployeeID string
	Month      string
	Days       map[string]Day
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GenerateDefault builds the schedule used when none has been stored.
func GenerateDefault(employeeID string, month calendar.Month) EmployeeSchedule {
	days := make(map[string]Day, month.Days())
	for d := 1; d <= month.Days(); d++ {
		days[calendar.DayKey(d)] = DefaultDay(month.Date(d, time.UTC))
	}
	return EmployeeSchedule{
		EmployeeID: employeeID,
		Month:      month.String(),
		Days:       days,
		IsDefault:  true,
	}
}

// DayOf returns the entry for a day of month, falling back to the default
// expectation when the stored schedule has no entry for it.
func (s EmployeeSchedule) DayOf(month calendar.Month, day int) Day {
	if d, ok := s.Days[calendar.DayKey(day)]; ok {
		return d
	}
	return DefaultDay(month.Date(day, time.UTC))
}

// ExpectsWork reports whether the employee is expected to work that day.
func (s EmployeeSchedule) ExpectsWork(month calendar.Month, day int) bool {
	return s.DayOf(month, day).Status == StatusWorkday
}
