package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create stores a new record. Returns ErrDuplicateRecord when the
	// employee already has a record for that date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns the record for a date, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Attendance, error)

	// Update overwrites an existing record.
	Update(ctx context.Context, attendance Attendance) error

	// ListByEmployeeAndMonth returns the employee's records of a YYYY-MM month, ordered by date.
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, month string) ([]Attendance, error)

	// ListOpenBefore returns records dated before the given date that have a
	// check-in, no check-out and are not yet flagged as missing checkout.
	ListOpenBefore(ctx context.Context, date string) ([]Attendance, error)
}
