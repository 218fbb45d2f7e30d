package kpi

import "context"

type KpiService interface {
	ListKpis(ctx context.Context, department string) ([]KpiResponse, error)
	CreateKpi(ctx context.Context, req CreateKpiRequest) (KpiResponse, error)
	UpdateKpi(ctx context.Context, req UpdateKpiRequest) (KpiResponse, error)

	// SubmitScores replaces the employee's manual scores for a month.
	SubmitScores(ctx context.Context, req SubmitScoresRequest) ([]ScoreResponse, error)
	GetScores(ctx context.Context, employeeID, month string) ([]ScoreResponse, error)

	// ComputeAttendanceKpi derives the monthly punctuality score.
	ComputeAttendanceKpi(ctx context.Context, employeeID, month string) (AttendanceScore, error)

	// Evaluate returns the attendance score and the blended overall score.
	Evaluate(ctx context.Context, employeeID, month string) (EvaluationResponse, error)
}
