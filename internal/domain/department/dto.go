package department

import (
	"strings"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

// ========================================
// DEPARTMENT DTOs
// ========================================

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,max=20"`
	HeadID      string `json:"head_id"`
	Description string `json:"description" validate:"max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.HeadID = strings.TrimSpace(r.HeadID)
	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	return validator.Struct(r)
}

type UpdateDepartmentRequest struct {
	ID          string `json:"-" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,max=20"`
	HeadID      string `json:"head_id"`
	Description string `json:"description" validate:"max=500"`
	Status      string `json:"status" validate:"required,oneof=active inactive"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.HeadID = strings.TrimSpace(r.HeadID)
	return validator.Struct(r)
}

type DepartmentResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	HeadID        string   `json:"head_id,omitempty"`
	Description   string   `json:"description"`
	Status        Status   `json:"status"`
	Positions     []string `json:"positions"`
	EmployeeCount int      `json:"employee_count"`
}

func NewDepartmentResponse(d Department, employeeCount int) DepartmentResponse {
	positions := d.Positions
	if positions == nil {
		positions = []string{}
	}
	return DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Code:          d.Code,
		HeadID:        d.HeadID,
		Description:   d.Description,
		Status:        d.Status,
		Positions:     positions,
		EmployeeCount: employeeCount,
	}
}

// ========================================
// POSITION DTOs
// ========================================

type PositionRequest struct {
	DepartmentID string `json:"-" validate:"required"`
	Name         string `json:"name" validate:"required,max=100"`
}

func (r *PositionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type RenamePositionRequest struct {
	DepartmentID string `json:"-" validate:"required"`
	OldName      string `json:"-" validate:"required"`
	Name         string `json:"name" validate:"required,max=100"`
}

func (r *RenamePositionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}
