package memory

import (
	"context"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
)

type SelfAssessmentRepository struct {
	store *Store
}

func NewSelfAssessmentRepository(store *Store) *SelfAssessmentRepository {
	return &SelfAssessmentRepository{store: store}
}

func (r *SelfAssessmentRepository) Upsert(ctx context.Context, a assessment.SelfAssessment) (assessment.SelfAssessment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key(a.EmployeeID, a.Month)
	now := r.store.now()
	if existing, ok := r.store.assessments[k]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		a.ID = newID()
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.store.assessments[k] = a
	return a, nil
}

func (r *SelfAssessmentRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*assessment.SelfAssessment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.assessments[key(employeeID, month)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}
