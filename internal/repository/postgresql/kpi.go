package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type kpiRepository struct {
	db *database.DB
}

func NewKpiRepository(db *database.DB) kpi.KpiRepository {
	return &kpiRepository{db: db}
}

const kpiColumns = `id, department, name, description, weight, created_at, updated_at`

func scanKpi(row pgx.Row) (kpi.Kpi, error) {
	var k kpi.Kpi
	err := row.Scan(&k.ID, &k.Department, &k.Name, &k.Description, &k.Weight, &k.CreatedAt, &k.UpdatedAt)
	return k, err
}

// Create implements kpi.KpiRepository.
func (r *kpiRepository) Create(ctx context.Context, k kpi.Kpi) (kpi.Kpi, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpis (id, department, name, description, weight)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + kpiColumns

	created, err := scanKpi(q.QueryRow(ctx, query, k.ID, k.Department, k.Name, k.Description, k.Weight))
	if err != nil {
		if isUniqueViolation(err) {
			return kpi.Kpi{}, kpi.ErrKpiExists
		}
		return kpi.Kpi{}, fmt.Errorf("failed to create kpi: %w", err)
	}

	return created, nil
}

// Update implements kpi.KpiRepository.
func (r *kpiRepository) Update(ctx context.Context, k kpi.Kpi) (kpi.Kpi, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpis
		SET department = $1, name = $2, description = $3, weight = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + kpiColumns

	updated, err := scanKpi(q.QueryRow(ctx, query, k.Department, k.Name, k.Description, k.Weight, k.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.Kpi{}, kpi.ErrKpiNotFound
		}
		return kpi.Kpi{}, fmt.Errorf("failed to update kpi: %w", err)
	}

	return updated, nil
}

// GetByID implements kpi.KpiRepository.
func (r *kpiRepository) GetByID(ctx context.Context, id string) (kpi.Kpi, error) {
	q := GetQuerier(ctx, r.db)

	k, err := scanKpi(q.QueryRow(ctx, `SELECT `+kpiColumns+` FROM kpis WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.Kpi{}, kpi.ErrKpiNotFound
		}
		return kpi.Kpi{}, fmt.Errorf("failed to get kpi: %w", err)
	}

	return k, nil
}

// ListByDepartment implements kpi.KpiRepository.
func (r *kpiRepository) ListByDepartment(ctx context.Context, department string) ([]kpi.Kpi, error) {
	query := `SELECT ` + kpiColumns + `
		FROM kpis
		WHERE department = $1 OR department = $2
		ORDER BY (department = $2) DESC, id
	`
	return r.list(ctx, query, department, kpi.DepartmentAll)
}

// List implements kpi.KpiRepository.
func (r *kpiRepository) List(ctx context.Context) ([]kpi.Kpi, error) {
	return r.list(ctx, `SELECT `+kpiColumns+` FROM kpis ORDER BY department, id`)
}

// RenameDepartment implements kpi.KpiRepository.
func (r *kpiRepository) RenameDepartment(ctx context.Context, oldName, newName string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE kpis SET department = $1, updated_at = NOW() WHERE department = $2`, newName, oldName); err != nil {
		return fmt.Errorf("failed to rename kpi department: %w", err)
	}
	return nil
}

func (r *kpiRepository) list(ctx context.Context, query string, args ...any) ([]kpi.Kpi, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	defer rows.Close()

	result := make([]kpi.Kpi, 0)
	for rows.Next() {
		k, err := scanKpi(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		result = append(result, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpis: %w", err)
	}

	return result, nil
}
