package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDirectory(t *testing.T, setup *TestDatabaseSetup) {
	setup.InsertEmployee(t, "E000", "Admin User", "HRD", "admin", "active")
	setup.InsertEmployee(t, "E100", "David Chen", "Front Office", "dept_head", "active")
	setup.InsertEmployee(t, "E101", "John Doe", "Front Office", "employee", "active")
	setup.InsertEmployee(t, "E102", "Alice Johnson", "Front Office", "employee", "probation")
	setup.InsertEmployee(t, "E103", "Former Staff", "Front Office", "employee", "inactive")
	setup.InsertEmployee(t, "E201", "Jane Smith", "Housekeeping", "employee", "active")
}

func TestEmployeeRepository_Lists(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	repo := postgresql.NewEmployeeRepository(setup.DB)
	ctx := context.Background()

	e, err := repo.GetByID(ctx, "E102")
	require.NoError(t, err)
	assert.Equal(t, employee.StatusProbation, e.Status)

	_, err = repo.GetByID(ctx, "E999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	team, err := repo.ListByDepartment(ctx, "Front Office")
	require.NoError(t, err)
	assert.Len(t, team, 3)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 4)

	departments, err := repo.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Front Office", "HRD", "Housekeeping"}, departments)
}

func TestAttendanceRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	in := time.Date(2024, time.June, 3, 2, 12, 0, 0, time.UTC)
	method := attendance.CaptureMethodQR
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID:    "E101",
		Date:          "2024-06-03",
		CheckIn:       &in,
		LateMinutes:   12,
		AbsenceType:   attendance.AbsenceTypeLate,
		CheckInMethod: &method,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: "E101", Date: "2024-06-03", AbsenceType: attendance.AbsenceTypePresent})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	open, err := repo.ListOpenBefore(ctx, "2024-06-04")
	require.NoError(t, err)
	require.Len(t, open, 1)

	got, err := repo.GetByEmployeeAndDate(ctx, "E101", "2024-06-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CheckIn.Equal(in))

	out := in.Add(8*time.Hour + 7*time.Minute)
	got.CheckOut = &out
	got.TotalHours = 8.12
	require.NoError(t, repo.Update(ctx, *got))

	open, err = repo.ListOpenBefore(ctx, "2024-06-04")
	require.NoError(t, err)
	assert.Empty(t, open)

	june, err := repo.ListByEmployeeAndMonth(ctx, "E101", "2024-06")
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, 8.12, june[0].TotalHours)

	missing, err := repo.GetByEmployeeAndDate(ctx, "E101", "2024-06-04")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestScheduleRepository_UpsertReplacesMonth(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	repo := postgresql.NewScheduleRepository(setup.DB)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, schedule.EmployeeSchedule{
		EmployeeID: "E101",
		Month:      "2024-06",
		Days:       map[string]schedule.Day{"03": schedule.Off(schedule.StatusDayOff)},
	})
	require.NoError(t, err)

	saved, err := repo.Upsert(ctx, schedule.EmployeeSchedule{
		EmployeeID: "E101",
		Month:      "2024-06",
		Days:       map[string]schedule.Day{"04": schedule.Workday("13:00", "21:00")},
	})
	require.NoError(t, err)
	assert.False(t, saved.IsDefault)

	got, err := repo.GetByEmployeeAndMonth(ctx, "E101", "2024-06")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Days, 1)
	assert.Equal(t, "13:00", *got.Days["04"].StartTime)

	none, err := repo.GetByEmployeeAndMonth(ctx, "E101", "2024-07")
	require.NoError(t, err)
	assert.Nil(t, none)

	listed, err := repo.ListByMonth(ctx, "2024-06", []string{"E101", "E201"})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestKpiRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	kpis := postgresql.NewKpiRepository(setup.DB)
	scores := postgresql.NewKpiScoreRepository(setup.DB)
	ctx := context.Background()

	_, err := kpis.Create(ctx, kpi.Kpi{ID: "K01", Department: "Front Office", Name: "Guest Satisfaction", Weight: 40})
	require.NoError(t, err)
	_, err = kpis.Create(ctx, kpi.Kpi{ID: "K05", Department: "Housekeeping", Name: "Room Quality", Weight: 50})
	require.NoError(t, err)

	fo, err := kpis.ListByDepartment(ctx, "Front Office")
	require.NoError(t, err)
	require.Len(t, fo, 2)
	assert.Equal(t, kpi.AttendanceKpiID, fo[0].ID)

	_, err = kpis.GetByID(ctx, "K99")
	assert.ErrorIs(t, err, kpi.ErrKpiNotFound)

	require.NoError(t, scores.ReplaceForMonth(ctx, "E101", "2024-06", []kpi.Score{
		{KpiID: "K01", Score: 4, EvaluatedBy: "E100"},
	}))
	require.NoError(t, scores.ReplaceForMonth(ctx, "E101", "2024-06", []kpi.Score{
		{KpiID: "K01", Score: 5, Notes: "excellent", EvaluatedBy: "E100"},
	}))
	require.NoError(t, scores.ReplaceForMonth(ctx, "E101", "2024-05", []kpi.Score{
		{KpiID: "K01", Score: 3, EvaluatedBy: "E100"},
	}))

	june, err := scores.ListByEmployeeAndMonth(ctx, "E101", "2024-06")
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, 5, june[0].Score)
	assert.Equal(t, "excellent", june[0].Notes)

	all, err := scores.ListByEmployee(ctx, "E101")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A failing insert rolls the month back to its previous set.
	err = scores.ReplaceForMonth(ctx, "E101", "2024-06", []kpi.Score{
		{KpiID: "K01", Score: 2, EvaluatedBy: "E100"},
		{KpiID: "K_MISSING", Score: 2, EvaluatedBy: "E100"},
	})
	require.Error(t, err)

	june, err = scores.ListByEmployeeAndMonth(ctx, "E101", "2024-06")
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, 5, june[0].Score)
}
