package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, email, department, position, role, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Position,
		&emp.Role, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}

// ListByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE department = $1 AND status <> $2
		ORDER BY name, id
	`
	return e.list(ctx, query, department, employee.StatusInactive)
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE status <> $1 AND role <> $2
		ORDER BY name, id
	`
	return e.list(ctx, query, employee.StatusInactive, employee.RoleAdmin)
}

// ListAll implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListAll(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("department", filter.Department)
	add("role", filter.Role)
	add("status", filter.Status)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY name, id`

	return e.list(ctx, query, args...)
}

// ListDepartments implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListDepartments(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT department FROM employees WHERE status <> $1 ORDER BY department`, employee.StatusInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	departments, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan departments: %w", err)
	}
	return departments, nil
}

// CountByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountByDepartment(ctx context.Context) (map[string]int, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT department, COUNT(*) FROM employees GROUP BY department`)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			department string
			count      int
		)
		if err := rows.Scan(&department, &count); err != nil {
			return nil, fmt.Errorf("failed to scan employee count: %w", err)
		}
		counts[department] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee counts: %w", err)
	}

	return counts, nil
}

// CountByPosition implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountByPosition(ctx context.Context, department, position string) (int, error) {
	q := GetQuerier(ctx, e.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department = $1 AND position = $2`, department, position).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees by position: %w", err)
	}
	return count, nil
}

// NextID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) NextID(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT COALESCE(MAX(SUBSTRING(id FROM 2)::INTEGER), 0) + 1
		FROM employees
		WHERE id ~ '^E[0-9]+$'
	`

	var next int
	if err := q.QueryRow(ctx, query).Scan(&next); err != nil {
		return "", fmt.Errorf("failed to compute next employee id: %w", err)
	}
	return fmt.Sprintf("E%03d", next), nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (id, name, email, department, position, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.Name, emp.Email, emp.Department, emp.Position, emp.Role, emp.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET name = $1, email = $2, department = $3, position = $4, role = $5, status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.Name, emp.Email, emp.Department, emp.Position, emp.Role, emp.Status, emp.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return updated, nil
}

// Delete implements employee.EmployeeRepository. Related rows go with the
// employee through ON DELETE CASCADE; departments they headed lose their head
// through ON DELETE SET NULL.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// RenameDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) RenameDepartment(ctx context.Context, oldName, newName string) error {
	q := GetQuerier(ctx, e.db)

	if _, err := q.Exec(ctx, `UPDATE employees SET department = $1, updated_at = NOW() WHERE department = $2`, newName, oldName); err != nil {
		return fmt.Errorf("failed to rename employee department: %w", err)
	}
	return nil
}

// RenamePosition implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) RenamePosition(ctx context.Context, department, oldName, newName string) error {
	q := GetQuerier(ctx, e.db)

	query := `UPDATE employees SET position = $1, updated_at = NOW() WHERE department = $2 AND position = $3`
	if _, err := q.Exec(ctx, query, newName, department, oldName); err != nil {
		return fmt.Errorf("failed to rename employee position: %w", err)
	}
	return nil
}

func (e *employeeRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
