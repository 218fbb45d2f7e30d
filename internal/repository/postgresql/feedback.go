package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
)

type feedbackRepository struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) feedback.FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create implements feedback.FeedbackRepository.
func (r *feedbackRepository) Create(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO feedback (employee_id, month, feedback_text, coaching_plan, given_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, f.EmployeeID, f.Month, f.FeedbackText, f.CoachingPlan, f.GivenBy).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("failed to create feedback: %w", err)
	}

	return f, nil
}

// ListByEmployee implements feedback.FeedbackRepository.
func (r *feedbackRepository) ListByEmployee(ctx context.Context, employeeID, month string) ([]feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, feedback_text, coaching_plan, given_by, created_at
		FROM feedback
		WHERE employee_id = $1 AND ($2::text = '' OR month = $2::text)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	result := make([]feedback.Feedback, 0)
	for rows.Next() {
		var f feedback.Feedback
		if err := rows.Scan(&f.ID, &f.EmployeeID, &f.Month, &f.FeedbackText, &f.CoachingPlan, &f.GivenBy, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}

	return result, nil
}
