package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepository struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepository{db: db}
}

const departmentSelect = `
	SELECT d.id, d.name, d.code, COALESCE(d.head_id, ''), d.description, d.status, d.created_at, d.updated_at,
		ARRAY(
			SELECT p.name FROM department_positions p
			WHERE p.department_id = d.id
			ORDER BY p.created_at, p.name
		)
	FROM departments d
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.HeadID, &d.Description, &d.Status, &d.CreatedAt, &d.UpdatedAt, &d.Positions)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name, code, head_id, description, status)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, d.Name, d.Code, d.HeadID, d.Description, d.Status).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	for _, position := range d.Positions {
		if err := r.AddPosition(ctx, id, position); err != nil {
			return department.Department{}, err
		}
	}

	return r.GetByID(ctx, id)
}

// Update implements department.DepartmentRepository. Positions are left alone.
func (r *departmentRepository) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, code = $2, head_id = NULLIF($3, ''), description = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query, d.Name, d.Code, d.HeadID, d.Description, d.Status, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.Department{}, department.ErrDepartmentNotFound
	}

	return r.GetByID(ctx, d.ID)
}

// Delete implements department.DepartmentRepository. Positions are removed
// through ON DELETE CASCADE.
func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	return r.get(ctx, departmentSelect+` WHERE d.id = $1`, id)
}

// GetByName implements department.DepartmentRepository.
func (r *departmentRepository) GetByName(ctx context.Context, name string) (department.Department, error) {
	return r.get(ctx, departmentSelect+` WHERE d.name = $1`, name)
}

// List implements department.DepartmentRepository.
func (r *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return departments, nil
}

// AddPosition implements department.DepartmentRepository.
func (r *departmentRepository) AddPosition(ctx context.Context, departmentID, name string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `INSERT INTO department_positions (department_id, name) VALUES ($1, $2)`, departmentID, name)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return department.ErrPositionExists
		case isForeignKeyViolation(err):
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to add position: %w", err)
	}
	return nil
}

// RenamePosition implements department.DepartmentRepository.
func (r *departmentRepository) RenamePosition(ctx context.Context, departmentID, oldName, newName string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE department_positions SET name = $1 WHERE department_id = $2 AND name = $3`
	tag, err := q.Exec(ctx, query, newName, departmentID, oldName)
	if err != nil {
		if isUniqueViolation(err) {
			return department.ErrPositionExists
		}
		return fmt.Errorf("failed to rename position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrPositionNotFound
	}
	return nil
}

// DeletePosition implements department.DepartmentRepository.
func (r *departmentRepository) DeletePosition(ctx context.Context, departmentID, name string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM department_positions WHERE department_id = $1 AND name = $2`, departmentID, name)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrPositionNotFound
	}
	return nil
}

func (r *departmentRepository) get(ctx context.Context, query string, arg string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}
