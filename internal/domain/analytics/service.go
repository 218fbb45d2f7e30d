package analytics

import "context"

type AnalyticsService interface {
	// GetDepartmentAnalytics aggregates attendance and KPI results per
	// department for the current month and the months before it.
	GetDepartmentAnalytics(ctx context.Context, filter DepartmentAnalyticsFilter) (DepartmentAnalyticsResponse, error)
}
