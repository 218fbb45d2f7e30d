package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	Update(ctx context.Context, d Department) (Department, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)

	// List returns every department ordered by name.
	List(ctx context.Context) ([]Department, error)

	AddPosition(ctx context.Context, departmentID, name string) error
	RenamePosition(ctx context.Context, departmentID, oldName, newName string) error
	DeletePosition(ctx context.Context, departmentID, name string) error
}
