package schedule

import "context"

type ScheduleService interface {
	// GetEmployeeSchedule returns the stored schedule or the generated default.
	GetEmployeeSchedule(ctx context.Context, employeeID, month string) (ScheduleResponse, error)

	// GetTeamSchedules returns schedules of every active employee in a department.
	GetTeamSchedules(ctx context.Context, department, month string) ([]ScheduleResponse, error)

	// GetAllSchedules returns schedules of every active, non-admin employee.
	GetAllSchedules(ctx context.Context, month string) ([]ScheduleResponse, error)

	// SaveSchedules replaces whole months, last write wins.
	SaveSchedules(ctx context.Context, req SaveSchedulesRequest) ([]ScheduleResponse, error)
}
