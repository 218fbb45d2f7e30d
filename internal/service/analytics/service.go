package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/analytics"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentEvaluations bounds the evaluation fan-out per request.
const maxConcurrentEvaluations = 8

type AnalyticsServiceImpl struct {
	employee.EmployeeRepository
	kpiService kpi.KpiService
	loc        *time.Location
	now        func() time.Time
}

func NewAnalyticsService(employeeRepo employee.EmployeeRepository, kpiService kpi.KpiService, loc *time.Location) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		EmployeeRepository: employeeRepo,
		kpiService:         kpiService,
		loc:                loc,
		now:                time.Now,
	}
}

// GetDepartmentAnalytics implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetDepartmentAnalytics(ctx context.Context, filter analytics.DepartmentAnalyticsFilter) (analytics.DepartmentAnalyticsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	current := calendar.MonthOf(s.now().In(s.loc))
	months := make([]calendar.Month, 0, filter.Months)
	for i := filter.Months - 1; i >= 0; i-- {
		months = append(months, current.AddMonths(-i))
	}

	// evaluations[m][e] is employee e's result for months[m].
	evaluations := make([][]kpi.EvaluationResponse, len(months))
	for i := range evaluations {
		evaluations[i] = make([]kpi.EvaluationResponse, len(employees))
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEvaluations)

	for mi, m := range months {
		for ei, e := range employees {
			g.Go(func() error {
				eval, err := s.kpiService.Evaluate(gCtx, e.ID, m.String())
				if err != nil {
					return fmt.Errorf("failed to evaluate %s for %s: %w", e.ID, m, err)
				}
				evaluations[mi][ei] = eval
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := make(analytics.DepartmentAnalyticsResponse, len(months))
	for mi, m := range months {
		resp[m.String()] = summarize(employees, evaluations[mi])
	}

	return resp, nil
}

// summarize folds one month of evaluations into per-department entries,
// sorted by department name.
func summarize(employees []employee.Employee, evals []kpi.EvaluationResponse) []analytics.DepartmentEntry {
	type acc struct {
		entry analytics.DepartmentEntry
		total float64
	}
	byDept := make(map[string]*acc)

	for i, e := range employees {
		a, ok := byDept[e.Department]
		if !ok {
			a = &acc{entry: analytics.DepartmentEntry{Department: e.Department}}
			byDept[e.Department] = a
		}

		eval := evals[i]
		a.entry.LateCount += eval.Attendance.LateCount
		a.entry.Absent += eval.Attendance.AbsentCount
		a.entry.Present += eval.AttendedDays
		if eval.Overall.Evaluated {
			a.entry.Evaluated++
			a.total += eval.Overall.Score
		}
	}

	entries := make([]analytics.DepartmentEntry, 0, len(byDept))
	for _, a := range byDept {
		if a.entry.Evaluated > 0 {
			a.entry.AvgKpi = decimal.NewFromFloat(a.total / float64(a.entry.Evaluated)).Round(1).InexactFloat64()
		}
		entries = append(entries, a.entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Department < entries[j].Department
	})

	return entries
}
