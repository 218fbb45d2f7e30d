package schedule

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
)

type ScheduleRepository interface {
	// GetByEmployeeAndMonth returns the stored schedule, or nil when none was saved.
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (*EmployeeSchedule, error)

	// Upsert replaces the whole month for the schedule's (employee, month) pair.
	Upsert(ctx context.Context, s EmployeeSchedule) (EmployeeSchedule, error)

	// ListByMonth returns stored schedules of the given employees for a month.
	ListByMonth(ctx context.Context, month string, employeeIDs []string) ([]EmployeeSchedule, error)
}

// Resolve returns the stored schedule for the month, or the generated default
// when nothing was saved. A missing schedule is never an error.
func Resolve(ctx context.Context, repo ScheduleRepository, employeeID string, month calendar.Month) (EmployeeSchedule, error) {
	stored, err := repo.GetByEmployeeAndMonth(ctx, employeeID, month.String())
	if err != nil {
		return EmployeeSchedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if stored == nil {
		return GenerateDefault(employeeID, month), nil
	}
	return *stored, nil
}
