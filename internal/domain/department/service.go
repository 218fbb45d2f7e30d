package department

import "context"

type DepartmentService interface {
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (DepartmentResponse, error)
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)

	// UpdateDepartment renames cascade to employees and KPIs; a head change
	// promotes the new head and demotes the previous one.
	UpdateDepartment(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	AddPosition(ctx context.Context, req PositionRequest) (DepartmentResponse, error)
	RenamePosition(ctx context.Context, req RenamePositionRequest) (DepartmentResponse, error)
	DeletePosition(ctx context.Context, req PositionRequest) (DepartmentResponse, error)
}
