package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_Writes(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	repo := postgresql.NewEmployeeRepository(setup.DB)
	ctx := context.Background()

	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "E202", next)

	created, err := repo.Create(ctx, employee.Employee{
		ID: next, Name: "Lee Park", Email: "lee.park@hotel.test",
		Department: "Housekeeping", Position: "Room Attendant",
		Role: employee.RoleEmployee, Status: employee.StatusActive,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, employee.Employee{
		ID: "E300", Name: "Copy", Email: "lee.park@hotel.test",
		Department: "Housekeeping", Role: employee.RoleEmployee, Status: employee.StatusActive,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	byEmail, err := repo.GetByEmail(ctx, "Lee.Park@hotel.test")
	require.NoError(t, err)
	assert.Equal(t, next, byEmail.ID)

	created.Position = "Laundry Attendant"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Laundry Attendant", updated.Position)

	count, err := repo.CountByPosition(ctx, "Housekeeping", "Laundry Attendant")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.RenamePosition(ctx, "Housekeeping", "Laundry Attendant", "Linen Attendant"))
	require.NoError(t, repo.RenameDepartment(ctx, "Housekeeping", "Rooms Division"))

	moved, err := repo.GetByID(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, "Rooms Division", moved.Department)
	assert.Equal(t, "Linen Attendant", moved.Position)

	counts, err := repo.CountByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, counts["Front Office"])
	assert.Equal(t, 2, counts["Rooms Division"])

	inactive, err := repo.ListAll(ctx, employee.EmployeeFilter{Department: "Front Office", Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "E103", inactive[0].ID)

	require.NoError(t, repo.Delete(ctx, next))
	assert.ErrorIs(t, repo.Delete(ctx, next), employee.ErrEmployeeNotFound)
}

func TestDepartmentRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	repo := postgresql.NewDepartmentRepository(setup.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, department.Department{
		Name: "Food & Beverage", Code: "FB", HeadID: "E201",
		Status: department.StatusActive, Positions: []string{"Waiter", "Bartender"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "E201", created.HeadID)
	assert.ElementsMatch(t, []string{"Waiter", "Bartender"}, created.Positions)

	_, err = repo.Create(ctx, department.Department{Name: "Other", Code: "FB", Status: department.StatusActive})
	assert.ErrorIs(t, err, department.ErrDepartmentExists)

	assert.ErrorIs(t, repo.AddPosition(ctx, created.ID, "Waiter"), department.ErrPositionExists)
	assert.ErrorIs(t, repo.RenamePosition(ctx, created.ID, "Sommelier", "Wine Steward"), department.ErrPositionNotFound)
	require.NoError(t, repo.RenamePosition(ctx, created.ID, "Waiter", "Server"))
	require.NoError(t, repo.DeletePosition(ctx, created.ID, "Bartender"))

	created.HeadID = ""
	created.Name = "F&B"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Empty(t, updated.HeadID)
	assert.Equal(t, []string{"Server"}, updated.Positions)

	byName, err := repo.GetByName(ctx, "F&B")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestFeedbackAndSelfAssessmentRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	feedbackRepo := postgresql.NewFeedbackRepository(setup.DB)
	assessments := postgresql.NewSelfAssessmentRepository(setup.DB)
	ctx := context.Background()

	for _, text := range []string{"first", "second"} {
		_, err := feedbackRepo.Create(ctx, feedback.Feedback{EmployeeID: "E101", Month: "2024-06", FeedbackText: text, GivenBy: "E100"})
		require.NoError(t, err)
	}
	_, err := feedbackRepo.Create(ctx, feedback.Feedback{EmployeeID: "E101", Month: "2024-05", FeedbackText: "older", GivenBy: "E100"})
	require.NoError(t, err)

	june, err := feedbackRepo.ListByEmployee(ctx, "E101", "2024-06")
	require.NoError(t, err)
	assert.Len(t, june, 2)

	all, err := feedbackRepo.ListByEmployee(ctx, "E101", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = assessments.Upsert(ctx, assessment.SelfAssessment{EmployeeID: "E101", Month: "2024-06", Strengths: "guests", Weaknesses: "upselling"})
	require.NoError(t, err)
	_, err = assessments.Upsert(ctx, assessment.SelfAssessment{EmployeeID: "E101", Month: "2024-06", Strengths: "guests", Weaknesses: "night audit"})
	require.NoError(t, err)

	got, err := assessments.GetByEmployeeAndMonth(ctx, "E101", "2024-06")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "night audit", got.Weaknesses)

	none, err := assessments.GetByEmployeeAndMonth(ctx, "E101", "2024-07")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	seedDirectory(t, setup)
	tx := postgresql.NewTransactor(setup.DB)
	employees := postgresql.NewEmployeeRepository(setup.DB)
	kpis := postgresql.NewKpiRepository(setup.DB)
	ctx := context.Background()

	_, err := kpis.Create(ctx, kpi.Kpi{ID: "K01", Department: "Front Office", Name: "Guest Satisfaction", Weight: 40})
	require.NoError(t, err)

	failure := errors.New("stop")
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, employees.RenameDepartment(ctx, "Front Office", "Reception"))
		require.NoError(t, kpis.RenameDepartment(ctx, "Front Office", "Reception"))
		return failure
	})
	assert.ErrorIs(t, err, failure)

	team, err := employees.ListByDepartment(ctx, "Front Office")
	require.NoError(t, err)
	assert.Len(t, team, 3)

	k, err := kpis.GetByID(ctx, "K01")
	require.NoError(t, err)
	assert.Equal(t, "Front Office", k.Department)
}
