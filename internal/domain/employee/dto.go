package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

type EmployeeFilter struct {
	Department string `json:"department"`
	Role       string `json:"role" validate:"omitempty,oneof=admin dept_head employee"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive probation"`
}

func (f *EmployeeFilter) Validate() error {
	return validator.Struct(f)
}

type CreateEmployeeRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Role       string `json:"role" validate:"required,oneof=admin dept_head employee"`
	Department string `json:"department" validate:"required_unless=Role admin,max=100"`
	Position   string `json:"position" validate:"max=100"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive probation"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)
	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	if Role(r.Role) == RoleAdmin {
		r.Department = AdminDepartment
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string `json:"-" validate:"required"`
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Role       string `json:"role" validate:"required,oneof=admin dept_head employee"`
	Department string `json:"department" validate:"required_unless=Role admin,max=100"`
	Position   string `json:"position" validate:"max=100"`
	Status     string `json:"status" validate:"required,oneof=active inactive probation"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)
	if err := validator.Struct(r); err != nil {
		return err
	}
	if Role(r.Role) == RoleAdmin {
		r.Department = AdminDepartment
	}
	return nil
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       Role   `json:"role"`
	Status     Status `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Role:       e.Role,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}
