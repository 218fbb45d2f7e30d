package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	employee.EmployeeRepository
	tx  database.Transactor
	loc *time.Location
	now func() time.Time
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository, employeeRepo employee.EmployeeRepository, tx database.Transactor, loc *time.Location) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepository: scheduleRepo,
		EmployeeRepository: employeeRepo,
		tx:                 tx,
		loc:                loc,
		now:                time.Now,
	}
}

// parseMonth parses YYYY-MM, defaulting to the current month.
func (s *ScheduleServiceImpl) parseMonth(month string) (calendar.Month, error) {
	if month == "" {
		return calendar.MonthOf(s.now().In(s.loc)), nil
	}
	return validator.MonthParam("month", month)
}

// GetEmployeeSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetEmployeeSchedule(ctx context.Context, employeeID, month string) (schedule.ScheduleResponse, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	sched, err := schedule.Resolve(ctx, s.ScheduleRepository, employeeID, m)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return schedule.NewScheduleResponse(sched), nil
}

// GetTeamSchedules implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetTeamSchedules(ctx context.Context, department, month string) ([]schedule.ScheduleResponse, error) {
	if validator.IsEmpty(department) {
		return nil, validator.ValidationErrors{{Field: "department", Message: "department is required"}}
	}
	m, err := s.parseMonth(month)
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return s.schedulesFor(ctx, employees, m)
}

// GetAllSchedules implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetAllSchedules(ctx context.Context, month string) ([]schedule.ScheduleResponse, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return s.schedulesFor(ctx, employees, m)
}

// schedulesFor loads stored schedules in one query and generates defaults for
// employees without one, keeping the employee order.
func (s *ScheduleServiceImpl) schedulesFor(ctx context.Context, employees []employee.Employee, m calendar.Month) ([]schedule.ScheduleResponse, error) {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	stored, err := s.ScheduleRepository.ListByMonth(ctx, m.String(), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	byEmployee := make(map[string]schedule.EmployeeSchedule, len(stored))
	for _, sc := range stored {
		byEmployee[sc.EmployeeID] = sc
	}

	resp := make([]schedule.ScheduleResponse, 0, len(employees))
	for _, e := range employees {
		sc, ok := byEmployee[e.ID]
		if !ok {
			sc = schedule.GenerateDefault(e.ID, m)
		}
		resp = append(resp, schedule.NewScheduleResponse(sc))
	}
	return resp, nil
}

// SaveSchedules implements schedule.ScheduleService. The batch is stored in one
// transaction.
func (s *ScheduleServiceImpl) SaveSchedules(ctx context.Context, req schedule.SaveSchedulesRequest) ([]schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for _, in := range req.Schedules {
		if _, err := s.EmployeeRepository.GetByID(ctx, in.EmployeeID); err != nil {
			return nil, fmt.Errorf("%w: %s", err, in.EmployeeID)
		}
	}

	saved := make([]schedule.EmployeeSchedule, 0, len(req.Schedules))
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, in := range req.Schedules {
			sc, err := s.ScheduleRepository.Upsert(ctx, in.ToEntity())
			if err != nil {
				return fmt.Errorf("failed to save schedule for %s %s: %w", in.EmployeeID, in.Month, err)
			}
			saved = append(saved, sc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := make([]schedule.ScheduleResponse, 0, len(saved))
	for _, sc := range saved {
		slog.Info("Schedule saved", "employee_id", sc.EmployeeID, "month", sc.Month, "days", len(sc.Days))
		resp = append(resp, schedule.NewScheduleResponse(sc))
	}

	return resp, nil
}
