package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
)

type FeedbackRepository struct {
	store *Store
}

func NewFeedbackRepository(store *Store) *FeedbackRepository {
	return &FeedbackRepository{store: store}
}

func (r *FeedbackRepository) Create(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f.ID = newID()
	f.CreatedAt = r.store.now()
	r.store.feedback = append(r.store.feedback, f)
	return f, nil
}

func (r *FeedbackRepository) ListByEmployee(ctx context.Context, employeeID, month string) ([]feedback.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]feedback.Feedback, 0)
	for _, f := range r.store.feedback {
		if f.EmployeeID == employeeID && (month == "" || f.Month == month) {
			result = append(result, f)
		}
	}
	// Ids are v7 uuids, so they break creation-time ties in insertion order.
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}
