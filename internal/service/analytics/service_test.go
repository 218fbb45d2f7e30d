package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/analytics"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/memory"
	kpiService "github.com/cmlabs-hris/hotel-performance-backend/internal/service/kpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc7 = time.FixedZone("WIB", 7*60*60)

// 30 June 2024; April has 22 weekdays, May 23 and June 20.
var lastOfJune = time.Date(2024, time.June, 30, 20, 0, 0, 0, utc7)

type stubKpiService struct {
	kpi.KpiService
	evaluate func(ctx context.Context, employeeID, month string) (kpi.EvaluationResponse, error)
}

func (s stubKpiService) Evaluate(ctx context.Context, employeeID, month string) (kpi.EvaluationResponse, error) {
	return s.evaluate(ctx, employeeID, month)
}

func TestAnalyticsService_GetDepartmentAnalytics_EmptyAttendance(t *testing.T) {
	store := memory.NewStore()
	memory.Seed(store)
	employees := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	scheduleRepo := memory.NewScheduleRepository(store)

	// The KPI service reads the wall clock; use months that are already over.
	kpiSvc := kpiService.NewKpiService(memory.NewKpiRepository(store), memory.NewScoreRepository(store), attendanceRepo, scheduleRepo, employees, utc7)

	svc := NewAnalyticsService(employees, kpiSvc, utc7).(*AnalyticsServiceImpl)
	svc.now = func() time.Time { return lastOfJune }

	got, err := svc.GetDepartmentAnalytics(context.Background(), analytics.DepartmentAnalyticsFilter{})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Contains(t, got, "2024-04")
	assert.Contains(t, got, "2024-05")
	assert.Contains(t, got, "2024-06")

	april := got["2024-04"]
	require.Len(t, april, 2)
	assert.Equal(t, "Front Office", april[0].Department)
	assert.Equal(t, "Housekeeping", april[1].Department)

	assert.Equal(t, 66, april[0].Absent)
	assert.Equal(t, 44, april[1].Absent)
	assert.Zero(t, april[0].Present)
	assert.Equal(t, 3, april[0].Evaluated)
	// Every employee only has the minimum attendance score: 1/5 of 100.
	assert.Equal(t, 20.0, april[0].AvgKpi)
}

func TestAnalyticsService_GetDepartmentAnalytics_Aggregates(t *testing.T) {
	store := memory.NewStore()
	memory.Seed(store)

	evals := map[string]kpi.EvaluationResponse{
		"E100": {Attendance: kpi.AttendanceScore{LateCount: 1}, AttendedDays: 20, Overall: kpi.OverallScore{Score: 90, Evaluated: true}},
		"E101": {Attendance: kpi.AttendanceScore{LateCount: 2, AbsentCount: 1}, AttendedDays: 19, Overall: kpi.OverallScore{Score: 75.55, Evaluated: true}},
		"E102": {AttendedDays: 20},
		"E200": {Overall: kpi.OverallScore{Score: 50, Evaluated: true}},
		"E201": {Overall: kpi.OverallScore{Score: 60, Evaluated: true}},
	}
	stub := stubKpiService{evaluate: func(ctx context.Context, employeeID, month string) (kpi.EvaluationResponse, error) {
		return evals[employeeID], nil
	}}

	svc := NewAnalyticsService(memory.NewEmployeeRepository(store), stub, utc7).(*AnalyticsServiceImpl)
	svc.now = func() time.Time { return lastOfJune }

	got, err := svc.GetDepartmentAnalytics(context.Background(), analytics.DepartmentAnalyticsFilter{Months: 1})

	require.NoError(t, err)
	require.Len(t, got, 1)
	june := got["2024-06"]
	require.Len(t, june, 2)

	assert.Equal(t, analytics.DepartmentEntry{
		Department: "Front Office",
		AvgKpi:     82.8,
		Evaluated:  2,
		LateCount:  3,
		Present:    59,
		Absent:     1,
	}, june[0])
	assert.Equal(t, 55.0, june[1].AvgKpi)
}

func TestAnalyticsService_GetDepartmentAnalytics_InvalidMonths(t *testing.T) {
	store := memory.NewStore()
	svc := NewAnalyticsService(memory.NewEmployeeRepository(store), stubKpiService{}, utc7)

	_, err := svc.GetDepartmentAnalytics(context.Background(), analytics.DepartmentAnalyticsFilter{Months: 13})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAnalyticsService_GetDepartmentAnalytics_CountsLateRecords(t *testing.T) {
	store := memory.NewStore()
	memory.Seed(store)
	employees := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)

	in := time.Date(2024, time.May, 6, 2, 30, 0, 0, time.UTC)
	_, err := attendanceRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID: "E201", Date: "2024-05-06", CheckIn: &in, LateMinutes: 30, AbsenceType: attendance.AbsenceTypeLate,
	})
	require.NoError(t, err)

	kpiSvc := kpiService.NewKpiService(memory.NewKpiRepository(store), memory.NewScoreRepository(store), attendanceRepo, memory.NewScheduleRepository(store), employees, utc7)
	svc := NewAnalyticsService(employees, kpiSvc, utc7).(*AnalyticsServiceImpl)
	svc.now = func() time.Time { return lastOfJune }

	got, err := svc.GetDepartmentAnalytics(context.Background(), analytics.DepartmentAnalyticsFilter{Months: 2})

	require.NoError(t, err)
	may := got["2024-05"]
	require.Len(t, may, 2)
	assert.Equal(t, 1, may[1].LateCount)
	assert.Equal(t, 1, may[1].Present)
	assert.Equal(t, 45, may[1].Absent)
}
