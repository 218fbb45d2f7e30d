package kpi

import (
	"strings"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

// ========================================
// KPI MASTER DTOs
// ========================================

type CreateKpiRequest struct {
	ID          string `json:"id"`
	Department  string `json:"department" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Weight      int    `json:"weight" validate:"min=1,max=100"`
}

func (r *CreateKpiRequest) Validate() error {
	r.ID = strings.TrimSpace(r.ID)
	r.Department = strings.TrimSpace(r.Department)
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type UpdateKpiRequest struct {
	ID          string `json:"-" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Weight      int    `json:"weight" validate:"min=1,max=100"`
}

func (r *UpdateKpiRequest) Validate() error {
	r.Department = strings.TrimSpace(r.Department)
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type KpiResponse struct {
	ID           string `json:"id"`
	Department   string `json:"department"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Weight       int    `json:"weight"`
	IsAttendance bool   `json:"is_attendance"`
}

func NewKpiResponse(k Kpi) KpiResponse {
	return KpiResponse{
		ID:           k.ID,
		Department:   k.Department,
		Name:         k.Name,
		Description:  k.Description,
		Weight:       k.Weight,
		IsAttendance: k.IsAttendance(),
	}
}

// ========================================
// SCORING DTOs
// ========================================

// ScoreInput is one KPI entry of a submission. Score 0 means not set and is
// dropped.
type ScoreInput struct {
	KpiID string `json:"kpi_id" validate:"required"`
	Score int    `json:"score" validate:"min=0,max=5"`
	Notes string `json:"notes" validate:"max=1000"`
}

type SubmitScoresRequest struct {
	EvaluatorID string       `json:"-" validate:"required"`
	EmployeeID  string       `json:"employee_id" validate:"required"`
	Month       string       `json:"month" validate:"required,month"`
	Scores      []ScoreInput `json:"scores" validate:"dive"`
}

func (r *SubmitScoresRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	seen := make(map[string]bool, len(r.Scores))
	var errs validator.ValidationErrors
	for _, s := range r.Scores {
		if seen[s.KpiID] {
			errs = append(errs, validator.ValidationError{
				Field:   "scores",
				Message: "kpi " + s.KpiID + " is scored more than once",
			})
		}
		seen[s.KpiID] = true
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScoreResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Month       string `json:"month"`
	KpiID       string `json:"kpi_id"`
	Score       int    `json:"score"`
	Notes       string `json:"notes"`
	EvaluatedBy string `json:"evaluated_by"`
}

func NewScoreResponse(s Score) ScoreResponse {
	return ScoreResponse{
		ID:          s.ID,
		EmployeeID:  s.EmployeeID,
		Month:       s.Month,
		KpiID:       s.KpiID,
		Score:       s.Score,
		Notes:       s.Notes,
		EvaluatedBy: s.EvaluatedBy,
	}
}

// ========================================
// EVALUATION DTOs
// ========================================

type EvaluationResponse struct {
	EmployeeID   string          `json:"employee_id"`
	Department   string          `json:"department"`
	Month        string          `json:"month"`
	Attendance   AttendanceScore `json:"attendance"`
	Overall      OverallScore    `json:"overall"`
	AttendedDays int             `json:"attended_days"`
	Scores       []ScoreResponse `json:"scores"`
}
