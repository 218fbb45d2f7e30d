package kpi

import "context"

type KpiRepository interface {
	Create(ctx context.Context, k Kpi) (Kpi, error)
	Update(ctx context.Context, k Kpi) (Kpi, error)
	GetByID(ctx context.Context, id string) (Kpi, error)

	// ListByDepartment returns the department's KPIs plus those marked All.
	ListByDepartment(ctx context.Context, department string) ([]Kpi, error)

	List(ctx context.Context) ([]Kpi, error)

	// RenameDepartment moves every KPI of oldName to newName.
	RenameDepartment(ctx context.Context, oldName, newName string) error
}

type ScoreRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Score, error)
	ListByEmployeeAndMonth(ctx context.Context, employeeID, month string) ([]Score, error)

	// ReplaceForMonth atomically swaps the whole (employee, month) score set.
	ReplaceForMonth(ctx context.Context, employeeID, month string, scores []Score) error
}
