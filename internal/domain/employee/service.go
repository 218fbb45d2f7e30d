package employee

import "context"

// EmployeeService manages the employee directory. Only admins reach it.
type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee and every record kept for them.
	DeleteEmployee(ctx context.Context, actorID, id string) error
}
