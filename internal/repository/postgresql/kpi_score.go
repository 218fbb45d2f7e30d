package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
)

type kpiScoreRepository struct {
	db *database.DB
}

func NewKpiScoreRepository(db *database.DB) kpi.ScoreRepository {
	return &kpiScoreRepository{db: db}
}

const kpiScoreColumns = `id, employee_id, month, kpi_id, score, notes, evaluated_by, created_at`

// ListByEmployee implements kpi.ScoreRepository.
func (r *kpiScoreRepository) ListByEmployee(ctx context.Context, employeeID string) ([]kpi.Score, error) {
	query := `SELECT ` + kpiScoreColumns + `
		FROM kpi_scores
		WHERE employee_id = $1
		ORDER BY month, kpi_id
	`
	return r.list(ctx, query, employeeID)
}

// ListByEmployeeAndMonth implements kpi.ScoreRepository.
func (r *kpiScoreRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID, month string) ([]kpi.Score, error) {
	query := `SELECT ` + kpiScoreColumns + `
		FROM kpi_scores
		WHERE employee_id = $1 AND month = $2
		ORDER BY kpi_id
	`
	return r.list(ctx, query, employeeID, month)
}

// ReplaceForMonth implements kpi.ScoreRepository.
func (r *kpiScoreRepository) ReplaceForMonth(ctx context.Context, employeeID, month string, scores []kpi.Score) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM kpi_scores WHERE employee_id = $1 AND month = $2`, employeeID, month); err != nil {
			return fmt.Errorf("failed to delete kpi scores: %w", err)
		}

		query := `
			INSERT INTO kpi_scores (employee_id, month, kpi_id, score, notes, evaluated_by)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for _, s := range scores {
			if _, err := q.Exec(ctx, query, employeeID, month, s.KpiID, s.Score, s.Notes, s.EvaluatedBy); err != nil {
				return fmt.Errorf("failed to insert kpi score %s: %w", s.KpiID, err)
			}
		}

		return nil
	})
}

func (r *kpiScoreRepository) list(ctx context.Context, query string, args ...any) ([]kpi.Score, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi scores: %w", err)
	}
	defer rows.Close()

	result := make([]kpi.Score, 0)
	for rows.Next() {
		var s kpi.Score
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Month, &s.KpiID, &s.Score, &s.Notes, &s.EvaluatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kpi score: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpi scores: %w", err)
	}

	return result, nil
}
