package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	tx             database.Transactor
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, departmentRepo department.DepartmentRepository, tx database.Transactor) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		tx:             tx,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService. A dept_head becomes the
// head of a department that has none.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	role := employee.Role(req.Role)
	dept, err := s.placement(ctx, role, req.Department, req.Position)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkEmailFree(ctx, req.Email, ""); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		id, err := s.employeeRepo.NextID(ctx)
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			ID:         id,
			Name:       req.Name,
			Email:      req.Email,
			Department: req.Department,
			Position:   req.Position,
			Role:       role,
			Status:     employee.Status(req.Status),
		})
		if err != nil {
			return err
		}

		return s.claimHead(ctx, created, dept)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "department", created.Department, "role", created.Role)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService. Head assignments follow
// the employee's new role and department.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	role := employee.Role(req.Role)
	status := employee.Status(req.Status)
	dept, err := s.placement(ctx, role, req.Department, req.Position)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkEmailFree(ctx, req.Email, current.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	losesAdmin := current.Role == employee.RoleAdmin && current.IsActive() &&
		(role != employee.RoleAdmin || status == employee.StatusInactive)
	if losesAdmin {
		if err := s.checkNotLastAdmin(ctx); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	var updated employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.employeeRepo.Update(ctx, employee.Employee{
			ID:         current.ID,
			Name:       req.Name,
			Email:      req.Email,
			Department: req.Department,
			Position:   req.Position,
			Role:       role,
			Status:     status,
		})
		if err != nil {
			return err
		}

		if err := s.releaseHeadships(ctx, updated); err != nil {
			return err
		}
		return s.claimHead(ctx, updated, dept)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", updated.ID, "department", updated.Department, "role", updated.Role)
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return employee.ErrCannotDeleteSelf
	}

	target, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == employee.RoleAdmin && target.IsActive() {
		if err := s.checkNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		target.Role = employee.RoleEmployee
		target.Department = ""
		if err := s.releaseHeadships(ctx, target); err != nil {
			return err
		}
		return s.employeeRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id, "by", actorID)
	return nil
}

// placement checks that a non-admin joins an existing department and one of
// its positions. Admins are filed under the admin department unchecked.
func (s *EmployeeServiceImpl) placement(ctx context.Context, role employee.Role, departmentName, position string) (*department.Department, error) {
	if role == employee.RoleAdmin {
		return nil, nil
	}

	d, err := s.departmentRepo.GetByName(ctx, departmentName)
	if err != nil {
		return nil, err
	}
	if position != "" && !d.HasPosition(position) {
		return nil, department.ErrPositionNotFound
	}
	return &d, nil
}

func (s *EmployeeServiceImpl) checkEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.employeeRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case existing.ID != selfID:
		return employee.ErrEmailExists
	}
	return nil
}

func (s *EmployeeServiceImpl) checkNotLastAdmin(ctx context.Context) error {
	admins, err := s.employeeRepo.ListAll(ctx, employee.EmployeeFilter{Role: string(employee.RoleAdmin)})
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	active := 0
	for _, a := range admins {
		if a.IsActive() {
			active++
		}
	}
	if active <= 1 {
		return employee.ErrLastAdmin
	}
	return nil
}

// claimHead makes a dept_head the head of dept when the department has none.
func (s *EmployeeServiceImpl) claimHead(ctx context.Context, e employee.Employee, dept *department.Department) error {
	if dept == nil || e.Role != employee.RoleDeptHead || dept.HeadID != "" {
		return nil
	}

	dept.HeadID = e.ID
	if _, err := s.departmentRepo.Update(ctx, *dept); err != nil {
		return fmt.Errorf("failed to assign department head: %w", err)
	}
	return nil
}

// releaseHeadships clears e as head of every department it can no longer
// head: all of them unless e is a dept_head, otherwise those it left.
func (s *EmployeeServiceImpl) releaseHeadships(ctx context.Context, e employee.Employee) error {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}

	for _, d := range departments {
		if d.HeadID != e.ID {
			continue
		}
		if e.Role == employee.RoleDeptHead && d.Name == e.Department {
			continue
		}
		d.HeadID = ""
		if _, err := s.departmentRepo.Update(ctx, d); err != nil {
			return fmt.Errorf("failed to clear department head: %w", err)
		}
	}
	return nil
}
