package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// GetByEmployeeAndMonth implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (*schedule.EmployeeSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, days, created_at, updated_at
		FROM employee_schedules
		WHERE employee_id = $1 AND month = $2
	`

	var s schedule.EmployeeSchedule
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Days, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return &s, nil
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepository) Upsert(ctx context.Context, s schedule.EmployeeSchedule) (schedule.EmployeeSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_schedules (employee_id, month, days)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, month)
		DO UPDATE SET days = EXCLUDED.days, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.EmployeeID, s.Month, s.Days).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.EmployeeSchedule{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}
	s.IsDefault = false

	return s, nil
}

// ListByMonth implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListByMonth(ctx context.Context, month string, employeeIDs []string) ([]schedule.EmployeeSchedule, error) {
	if len(employeeIDs) == 0 {
		return []schedule.EmployeeSchedule{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, days, created_at, updated_at
		FROM employee_schedules
		WHERE month = $1 AND employee_id = ANY($2)
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, month, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	result := make([]schedule.EmployeeSchedule, 0, len(employeeIDs))
	for rows.Next() {
		var s schedule.EmployeeSchedule
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Month, &s.Days, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	return result, nil
}
