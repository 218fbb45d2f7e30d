package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records today's arrival against the employee's schedule.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetMonthlyAttendance lists an employee's records for a month.
	GetMonthlyAttendance(ctx context.Context, employeeID, month string) (MonthlyAttendanceResponse, error)

	// FlagMissingCheckouts promotes open records of past days to missing
	// checkout and returns how many were flagged.
	FlagMissingCheckouts(ctx context.Context) (int, error)
}
