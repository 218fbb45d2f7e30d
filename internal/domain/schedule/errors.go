package schedule

import "errors"

var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrInvalidStatus       = errors.New("schedule status must be one of: workday, day_off, on_leave")
	ErrInvalidDayKey       = errors.New("schedule day key must be a two digit day of the month")
	ErrTimesOnNonWorkday   = errors.New("only workdays may carry start and end times")
	ErrWorkdayWithoutTimes = errors.New("a workday requires start and end times")
	ErrEndBeforeStart      = errors.New("end time must be after start time")
	ErrEmptySchedules      = errors.New("at least one schedule is required")
)
