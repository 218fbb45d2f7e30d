package department

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
	employeeRepo   employee.EmployeeRepository
	kpiRepo        kpi.KpiRepository
	tx             database.Transactor
}

func NewDepartmentService(
	departmentRepo department.DepartmentRepository,
	employeeRepo employee.EmployeeRepository,
	kpiRepo kpi.KpiRepository,
	tx database.Transactor,
) department.DepartmentService {
	return &DepartmentServiceImpl{
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
		kpiRepo:        kpiRepo,
		tx:             tx,
	}
}

// ListDepartments implements department.DepartmentService.
func (s *DepartmentServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	counts, err := s.employeeRepo.CountByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	resp := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, department.NewDepartmentResponse(d, counts[d.Name]))
	}
	return resp, nil
}

// GetDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return s.response(ctx, d)
}

// CreateDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if req.Name == kpi.DepartmentAll {
		return department.DepartmentResponse{}, department.ErrReservedName
	}

	var created department.Department
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.departmentRepo.Create(ctx, department.Department{
			Name:        req.Name,
			Code:        req.Code,
			Description: req.Description,
			Status:      department.Status(req.Status),
		})
		if err != nil {
			return err
		}

		if req.HeadID != "" {
			created, err = s.assignHead(ctx, created, req.HeadID)
		}
		return err
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	slog.Info("Department created", "department_id", created.ID, "name", created.Name, "head_id", created.HeadID)
	return s.response(ctx, created)
}

// UpdateDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if req.Name == kpi.DepartmentAll {
		return department.DepartmentResponse{}, department.ErrReservedName
	}

	current, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	var updated department.Department
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.Name != current.Name {
			if err := s.employeeRepo.RenameDepartment(ctx, current.Name, req.Name); err != nil {
				return err
			}
			if err := s.kpiRepo.RenameDepartment(ctx, current.Name, req.Name); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.departmentRepo.Update(ctx, department.Department{
			ID:          current.ID,
			Name:        req.Name,
			Code:        req.Code,
			HeadID:      current.HeadID,
			Description: req.Description,
			Status:      department.Status(req.Status),
		})
		if err != nil {
			return err
		}

		if req.HeadID == current.HeadID {
			return nil
		}
		if req.HeadID == "" {
			updated.HeadID = ""
			if updated, err = s.departmentRepo.Update(ctx, updated); err != nil {
				return err
			}
		} else if updated, err = s.assignHead(ctx, updated, req.HeadID); err != nil {
			return err
		}
		if current.HeadID != "" {
			return s.releaseHead(ctx, current.HeadID)
		}
		return nil
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	slog.Info("Department updated", "department_id", updated.ID, "name", updated.Name, "head_id", updated.HeadID)
	return s.response(ctx, updated)
}

// DeleteDepartment implements department.DepartmentService. Departments with
// employees assigned are kept.
func (s *DepartmentServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	counts, err := s.employeeRepo.CountByDepartment(ctx)
	if err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if counts[d.Name] > 0 {
		return department.ErrDepartmentInUse
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Department deleted", "department_id", id, "name", d.Name)
	return nil
}

// AddPosition implements department.DepartmentService.
func (s *DepartmentServiceImpl) AddPosition(ctx context.Context, req department.PositionRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if err := s.departmentRepo.AddPosition(ctx, req.DepartmentID, req.Name); err != nil {
		return department.DepartmentResponse{}, err
	}

	return s.GetDepartment(ctx, req.DepartmentID)
}

// RenamePosition implements department.DepartmentService. Employees holding
// the position are renamed with it.
func (s *DepartmentServiceImpl) RenamePosition(ctx context.Context, req department.RenamePositionRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if !d.HasPosition(req.OldName) {
		return department.DepartmentResponse{}, department.ErrPositionNotFound
	}
	if req.Name == req.OldName {
		return s.response(ctx, d)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.departmentRepo.RenamePosition(ctx, d.ID, req.OldName, req.Name); err != nil {
			return err
		}
		return s.employeeRepo.RenamePosition(ctx, d.Name, req.OldName, req.Name)
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return s.GetDepartment(ctx, d.ID)
}

// DeletePosition implements department.DepartmentService.
func (s *DepartmentServiceImpl) DeletePosition(ctx context.Context, req department.PositionRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if !d.HasPosition(req.Name) {
		return department.DepartmentResponse{}, department.ErrPositionNotFound
	}

	inUse, err := s.employeeRepo.CountByPosition(ctx, d.Name, req.Name)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}
	if inUse > 0 {
		return department.DepartmentResponse{}, department.ErrPositionInUse
	}

	if err := s.departmentRepo.DeletePosition(ctx, d.ID, req.Name); err != nil {
		return department.DepartmentResponse{}, err
	}

	return s.GetDepartment(ctx, d.ID)
}

// assignHead makes headID the head of d: the employee moves into d with the
// dept_head role and stops heading any other department.
func (s *DepartmentServiceImpl) assignHead(ctx context.Context, d department.Department, headID string) (department.Department, error) {
	head, err := s.employeeRepo.GetByID(ctx, headID)
	if err != nil {
		return department.Department{}, err
	}
	if head.Role == employee.RoleAdmin {
		return department.Department{}, department.ErrHeadIsAdmin
	}

	all, err := s.departmentRepo.List(ctx)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to list departments: %w", err)
	}
	for _, other := range all {
		if other.ID != d.ID && other.HeadID == headID {
			other.HeadID = ""
			if _, err := s.departmentRepo.Update(ctx, other); err != nil {
				return department.Department{}, err
			}
		}
	}

	head.Role = employee.RoleDeptHead
	head.Department = d.Name
	if _, err := s.employeeRepo.Update(ctx, head); err != nil {
		return department.Department{}, err
	}

	d.HeadID = headID
	return s.departmentRepo.Update(ctx, d)
}

// releaseHead demotes a former head to employee unless they still head a
// department.
func (s *DepartmentServiceImpl) releaseHead(ctx context.Context, headID string) error {
	all, err := s.departmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}
	for _, d := range all {
		if d.HeadID == headID {
			return nil
		}
	}

	former, err := s.employeeRepo.GetByID(ctx, headID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if former.Role != employee.RoleDeptHead {
		return nil
	}

	former.Role = employee.RoleEmployee
	_, err = s.employeeRepo.Update(ctx, former)
	return err
}

func (s *DepartmentServiceImpl) response(ctx context.Context, d department.Department) (department.DepartmentResponse, error) {
	counts, err := s.employeeRepo.CountByDepartment(ctx)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return department.NewDepartmentResponse(d, counts[d.Name]), nil
}
