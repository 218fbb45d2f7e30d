package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// ListByDepartment returns active employees of a department.
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)

	// ListActive returns every active employee, admins excluded.
	ListActive(ctx context.Context) ([]Employee, error)

	// ListAll returns employees matching filter, admins and inactive included.
	ListAll(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// ListDepartments returns the distinct departments of active employees, sorted.
	ListDepartments(ctx context.Context) ([]string, error)

	// CountByDepartment counts employees of any status per department.
	CountByDepartment(ctx context.Context) (map[string]int, error)
	CountByPosition(ctx context.Context, department, position string) (int, error)

	// NextID returns the next free E-prefixed employee id.
	NextID(ctx context.Context) (string, error)

	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	RenameDepartment(ctx context.Context, oldName, newName string) error
	RenamePosition(ctx context.Context, department, oldName, newName string) error
}
