package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type selfAssessmentRepository struct {
	db *database.DB
}

func NewSelfAssessmentRepository(db *database.DB) assessment.SelfAssessmentRepository {
	return &selfAssessmentRepository{db: db}
}

// Upsert implements assessment.SelfAssessmentRepository.
func (r *selfAssessmentRepository) Upsert(ctx context.Context, a assessment.SelfAssessment) (assessment.SelfAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO self_assessments (employee_id, month, strengths, weaknesses)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, month)
		DO UPDATE SET strengths = EXCLUDED.strengths, weaknesses = EXCLUDED.weaknesses, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, a.EmployeeID, a.Month, a.Strengths, a.Weaknesses).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return assessment.SelfAssessment{}, fmt.Errorf("failed to upsert self-assessment: %w", err)
	}

	return a, nil
}

// GetByEmployeeAndMonth implements assessment.SelfAssessmentRepository.
func (r *selfAssessmentRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*assessment.SelfAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, strengths, weaknesses, created_at, updated_at
		FROM self_assessments
		WHERE employee_id = $1 AND month = $2
	`

	var a assessment.SelfAssessment
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&a.ID, &a.EmployeeID, &a.Month, &a.Strengths, &a.Weaknesses, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get self-assessment: %w", err)
	}

	return &a, nil
}
