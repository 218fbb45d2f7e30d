package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
)

type KpiRepository struct {
	store *Store
}

func NewKpiRepository(store *Store) *KpiRepository {
	return &KpiRepository{store: store}
}

func (r *KpiRepository) Create(ctx context.Context, k kpi.Kpi) (kpi.Kpi, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.kpis {
		if existing.ID == k.ID {
			return kpi.Kpi{}, kpi.ErrKpiExists
		}
	}

	now := r.store.now()
	k.CreatedAt = now
	k.UpdatedAt = now
	r.store.kpis = append(r.store.kpis, k)
	return k, nil
}

func (r *KpiRepository) Update(ctx context.Context, k kpi.Kpi) (kpi.Kpi, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.kpis {
		if existing.ID == k.ID {
			k.CreatedAt = existing.CreatedAt
			k.UpdatedAt = r.store.now()
			r.store.kpis[i] = k
			return k, nil
		}
	}
	return kpi.Kpi{}, kpi.ErrKpiNotFound
}

func (r *KpiRepository) GetByID(ctx context.Context, id string) (kpi.Kpi, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, k := range r.store.kpis {
		if k.ID == id {
			return k, nil
		}
	}
	return kpi.Kpi{}, kpi.ErrKpiNotFound
}

func (r *KpiRepository) ListByDepartment(ctx context.Context, department string) ([]kpi.Kpi, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]kpi.Kpi, 0)
	for _, k := range r.store.kpis {
		if k.AppliesTo(department) {
			result = append(result, k)
		}
	}
	return result, nil
}

func (r *KpiRepository) List(ctx context.Context) ([]kpi.Kpi, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]kpi.Kpi(nil), r.store.kpis...), nil
}

func (r *KpiRepository) RenameDepartment(ctx context.Context, oldName, newName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	for i, k := range r.store.kpis {
		if k.Department == oldName {
			k.Department = newName
			k.UpdatedAt = now
			r.store.kpis[i] = k
		}
	}
	return nil
}

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

func (r *ScoreRepository) ListByEmployee(ctx context.Context, employeeID string) ([]kpi.Score, error) {
	return r.list(func(s kpi.Score) bool {
		return s.EmployeeID == employeeID
	}), nil
}

func (r *ScoreRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID, month string) ([]kpi.Score, error) {
	return r.list(func(s kpi.Score) bool {
		return s.EmployeeID == employeeID && s.Month == month
	}), nil
}

func (r *ScoreRepository) ReplaceForMonth(ctx context.Context, employeeID, month string, scores []kpi.Score) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.scores[:0:0]
	for _, s := range r.store.scores {
		if s.EmployeeID != employeeID || s.Month != month {
			kept = append(kept, s)
		}
	}

	now := r.store.now()
	for _, s := range scores {
		s.ID = newID()
		s.EmployeeID = employeeID
		s.Month = month
		s.CreatedAt = now
		kept = append(kept, s)
	}

	r.store.scores = kept
	return nil
}

func (r *ScoreRepository) list(keep func(kpi.Score) bool) []kpi.Score {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]kpi.Score, 0)
	for _, s := range r.store.scores {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].KpiID < result[j].KpiID
	})
	return result
}
