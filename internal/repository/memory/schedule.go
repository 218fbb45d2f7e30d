package memory

import (
	"context"
	"maps"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
)

type ScheduleRepository struct {
	store *Store
}

func NewScheduleRepository(store *Store) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

func (r *ScheduleRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (*schedule.EmployeeSchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.schedules[key(employeeID, month)]
	if !ok {
		return nil, nil
	}
	s = cloneSchedule(s)
	return &s, nil
}

func (r *ScheduleRepository) Upsert(ctx context.Context, s schedule.EmployeeSchedule) (schedule.EmployeeSchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key(s.EmployeeID, s.Month)
	now := r.store.now()
	if existing, ok := r.store.schedules[k]; ok {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = newID()
		s.CreatedAt = now
	}
	s.IsDefault = false
	s.UpdatedAt = now

	r.store.schedules[k] = cloneSchedule(s)
	return cloneSchedule(s), nil
}

func (r *ScheduleRepository) ListByMonth(ctx context.Context, month string, employeeIDs []string) ([]schedule.EmployeeSchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]schedule.EmployeeSchedule, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if s, ok := r.store.schedules[key(id, month)]; ok {
			result = append(result, cloneSchedule(s))
		}
	}
	return result, nil
}

// cloneSchedule copies the day map so callers never share it with the store.
func cloneSchedule(s schedule.EmployeeSchedule) schedule.EmployeeSchedule {
	s.Days = maps.Clone(s.Days)
	return s
}
