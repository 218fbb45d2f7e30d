package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

// ========================================
// SCHEDULE DTOs
// ========================================

type DayInput struct {
	Status    string  `json:"status" validate:"required"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

type ScheduleInput struct {
	EmployeeID string              `json:"employee_id" validate:"required"`
	Month      string              `json:"month" validate:"required,month"`
	Days       map[string]DayInput `json:"days" validate:"required"`
}

type SaveSchedulesRequest struct {
	Schedules []ScheduleInput `json:"schedules" validate:"required,dive"`
}

func (r *SaveSchedulesRequest) Validate() error {
	if len(r.Schedules) == 0 {
		return validator.ValidationErrors{{Field: "schedules", Message: ErrEmptySchedules.Error()}}
	}
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	for i, s := range r.Schedules {
		month, _ := calendar.ParseMonth(s.Month)
		for key, day := range s.Days {
			field := fmt.Sprintf("schedules[%d].days.%s", i, key)
			if _, err := month.ParseDayKey(key); err != nil {
				errs = append(errs, validator.ValidationError{Field: field, Message: ErrInvalidDayKey.Error()})
				continue
			}
			if err := day.validate(); err != nil {
				errs = append(errs, validator.ValidationError{Field: field, Message: err.Error()})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (d DayInput) validate() error {
	status := Status(d.Status)
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if status != StatusWorkday {
		if d.StartTime != nil || d.EndTime != nil {
			return ErrTimesOnNonWorkday
		}
		return nil
	}
	if d.StartTime == nil || d.EndTime == nil {
		return ErrWorkdayWithoutTimes
	}
	if !validator.IsValidClock(*d.StartTime) || !validator.IsValidClock(*d.EndTime) {
		return calendar.ErrInvalidClock
	}
	if *d.EndTime <= *d.StartTime {
		return ErrEndBeforeStart
	}
	return nil
}

// ToDay converts a validated input into its closed form.
func (d DayInput) ToDay() Day {
	status := Status(d.Status)
	if status == StatusWorkday {
		return Workday(*d.StartTime, *d.EndTime)
	}
	return Off(status)
}

// ToEntity converts a validated input into a schedule entity.
func (s ScheduleInput) ToEntity() EmployeeSchedule {
	days := make(map[string]Day, len(s.Days))
	for key, d := range s.Days {
		days[key] = d.ToDay()
	}
	return EmployeeSchedule{
		EmployeeID: s.EmployeeID,
		Month:      s.Month,
		Days:       days,
	}
}

type DayResponse struct {
	Day       string  `json:"day"`
	Date      string  `json:"date"`
	Status    Status  `json:"status"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

type ScheduleResponse struct {
	ID         string        `json:"id,omitempty"`
	EmployeeID string        `json:"employee_id"`
	Month      string        `json:"month"`
	IsDefault  bool          `json:"is_default"`
	Days       []DayResponse `json:"days"`
	UpdatedAt  string        `json:"updated_at,omitempty"`
}

// NewScheduleResponse expands a schedule into one entry per day of the month.
func NewScheduleResponse(s EmployeeSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Month:      s.Month,
		IsDefault:  s.IsDefault,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format("2006-01-02 15:04:05")
	}

	month, err := calendar.ParseMonth(s.Month)
	if err != nil {
		return resp
	}

	resp.Days = make([]DayResponse, 0, month.Days())
	for d := 1; d <= month.Days(); d++ {
		day := s.DayOf(month, d)
		resp.Days = append(resp.Days, DayResponse{
			Day:       calendar.DayKey(d),
			Date:      month.DateKey(d),
			Status:    day.Status,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}
	return resp
}
