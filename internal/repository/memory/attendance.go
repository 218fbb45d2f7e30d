package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
)

type AttendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

func (r *AttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key(a.EmployeeID, a.Date)
	if _, exists := r.store.attendance[k]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}

	now := r.store.now()
	a.ID = newID()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.store.attendance[k] = a
	return a, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.attendance[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key(a.EmployeeID, a.Date)
	existing, ok := r.store.attendance[k]
	if !ok || existing.ID != a.ID {
		return attendance.ErrAttendanceNotFound
	}

	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.store.now()
	r.store.attendance[k] = a
	return nil
}

func (r *AttendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month string) ([]attendance.Attendance, error) {
	m, err := calendar.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	return r.list(func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && m.Contains(a.Date)
	}), nil
}

func (r *AttendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return r.list(func(a attendance.Attendance) bool {
		return a.Date < date && a.IsOpen() && a.AbsenceType != attendance.AbsenceTypeMissingCheckout
	}), nil
}

func (r *AttendanceRepository) list(keep func(attendance.Attendance) bool) []attendance.Attendance {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, a := range r.store.attendance {
		if keep(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}
