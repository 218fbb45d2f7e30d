package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func setupScheduleService(t *testing.T) *ScheduleServiceImpl {
	t.Helper()

	store := memory.NewStore()
	memory.Seed(store)

	loc := time.FixedZone("WIB", 7*60*60)
	svc := NewScheduleService(memory.NewScheduleRepository(store), memory.NewEmployeeRepository(store), memory.NewTransactor(store), loc).(*ScheduleServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, loc) }
	return svc
}

func dayAt(t *testing.T, resp schedule.ScheduleResponse, key string) schedule.DayResponse {
	t.Helper()
	for _, d := range resp.Days {
		if d.Day == key {
			return d
		}
	}
	t.Fatalf("day %s missing from %s", key, resp.Month)
	return schedule.DayResponse{}
}

func TestScheduleService_GetEmployeeSchedule_DefaultWhenNotStored(t *testing.T) {
	svc := setupScheduleService(t)

	got, err := svc.GetEmployeeSchedule(context.Background(), "E101", "")

	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.Equal(t, "2024-06", got.Month)
	assert.Len(t, got.Days, 30)
	assert.Equal(t, schedule.StatusDayOff, dayAt(t, got, "01").Status)
	assert.Equal(t, "09:00", *dayAt(t, got, "03").StartTime)
}

func TestScheduleService_SaveSchedules_RoundTrip(t *testing.T) {
	svc := setupScheduleService(t)
	ctx := context.Background()

	saved, err := svc.SaveSchedules(ctx, schedule.SaveSchedulesRequest{Schedules: []schedule.ScheduleInput{{
		EmployeeID: "E101",
		Month:      "2024-06",
		Days: map[string]schedule.DayInput{
			"03": {Status: "day_off"},
			"04": {Status: "workday", StartTime: strPtr("13:00"), EndTime: strPtr("21:00")},
			"08": {Status: "workday", StartTime: strPtr("07:00"), EndTime: strPtr("15:00")},
		},
	}}})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.False(t, saved[0].IsDefault)

	got, err := svc.GetEmployeeSchedule(ctx, "E101", "2024-06")
	require.NoError(t, err)

	assert.False(t, got.IsDefault)
	assert.Len(t, got.Days, 30)
	assert.Equal(t, schedule.StatusDayOff, dayAt(t, got, "03").Status)
	assert.Equal(t, "13:00", *dayAt(t, got, "04").StartTime)
	assert.Equal(t, "21:00", *dayAt(t, got, "04").EndTime)
	assert.Equal(t, schedule.StatusWorkday, dayAt(t, got, "08").Status)
	// Untouched days keep the default pattern.
	assert.Equal(t, "09:00", *dayAt(t, got, "05").StartTime)
	assert.Equal(t, schedule.StatusDayOff, dayAt(t, got, "09").Status)
}

func TestScheduleService_SaveSchedules_LastWriteWins(t *testing.T) {
	svc := setupScheduleService(t)
	ctx := context.Background()

	save := func(days map[string]schedule.DayInput) {
		_, err := svc.SaveSchedules(ctx, schedule.SaveSchedulesRequest{Schedules: []schedule.ScheduleInput{{
			EmployeeID: "E101", Month: "2024-06", Days: days,
		}}})
		require.NoError(t, err)
	}

	save(map[string]schedule.DayInput{"04": {Status: "on_leave"}})
	save(map[string]schedule.DayInput{"05": {Status: "on_leave"}})

	got, err := svc.GetEmployeeSchedule(ctx, "E101", "2024-06")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusWorkday, dayAt(t, got, "04").Status)
	assert.Equal(t, schedule.StatusOnLeave, dayAt(t, got, "05").Status)
}

func TestScheduleService_SaveSchedules_Errors(t *testing.T) {
	svc := setupScheduleService(t)
	ctx := context.Background()

	_, err := svc.SaveSchedules(ctx, schedule.SaveSchedulesRequest{Schedules: []schedule.ScheduleInput{{
		EmployeeID: "E999", Month: "2024-06", Days: map[string]schedule.DayInput{"04": {Status: "day_off"}},
	}}})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.SaveSchedules(ctx, schedule.SaveSchedulesRequest{Schedules: []schedule.ScheduleInput{{
		EmployeeID: "E101", Month: "2024-06", Days: map[string]schedule.DayInput{
			"04": {Status: "workday", StartTime: strPtr("17:00"), EndTime: strPtr("09:00")},
		},
	}}})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	got, err := svc.GetEmployeeSchedule(ctx, "E101", "2024-06")
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
}

func TestScheduleService_GetTeamSchedules(t *testing.T) {
	svc := setupScheduleService(t)
	ctx := context.Background()

	_, err := svc.SaveSchedules(ctx, schedule.SaveSchedulesRequest{Schedules: []schedule.ScheduleInput{{
		EmployeeID: "E101", Month: "2024-06", Days: map[string]schedule.DayInput{"04": {Status: "day_off"}},
	}}})
	require.NoError(t, err)

	got, err := svc.GetTeamSchedules(ctx, "Front Office", "2024-06")
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := []string{got[0].EmployeeID, got[1].EmployeeID, got[2].EmployeeID}
	assert.Equal(t, []string{"E102", "E100", "E101"}, ids)
	assert.True(t, got[0].IsDefault)
	assert.False(t, got[2].IsDefault)

	_, err = svc.GetTeamSchedules(ctx, "", "2024-06")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestScheduleService_GetAllSchedules_ExcludesAdmins(t *testing.T) {
	svc := setupScheduleService(t)

	got, err := svc.GetAllSchedules(context.Background(), "2024-07")

	require.NoError(t, err)
	assert.Len(t, got, 5)
	for _, s := range got {
		assert.NotEqual(t, "E000", s.EmployeeID)
		assert.Len(t, s.Days, 31)
	}
}

// failingScheduleRepository fails the nth Upsert it receives.
type failingScheduleRepository struct {
	schedule.ScheduleRepository
	failOn int
	calls  int
}

func (r *failingScheduleRepository) Upsert(ctx context.Context, s schedule.EmployeeSchedule) (schedule.EmployeeSchedule, error) {
	r.calls++
	if r.calls == r.failOn {
		return schedule.EmployeeSchedule{}, errors.New("connection reset")
	}
	return r.ScheduleRepository.Upsert(ctx, s)
}

func TestScheduleService_SaveSchedules_BatchIsAtomic(t *testing.T) {
	store := memory.NewStore()
	memory.Seed(store)
	loc := time.FixedZone("WIB", 7*60*60)
	schedules := memory.NewScheduleRepository(store)
	svc := NewScheduleService(
		&failingScheduleRepository{ScheduleRepository: schedules, failOn: 2},
		memory.NewEmployeeRepository(store),
		memory.NewTransactor(store),
		loc,
	)
	ctx := context.Background()

	_, err := svc.SaveSchedules(ctx, schedule.SaveSchedulesRequest{Schedules: []schedule.ScheduleInput{
		{EmployeeID: "E101", Month: "2024-06", Days: map[string]schedule.DayInput{"03": {Status: "day_off"}}},
		{EmployeeID: "E102", Month: "2024-06", Days: map[string]schedule.DayInput{"04": {Status: "day_off"}}},
	}})
	require.Error(t, err)

	first, err := schedules.GetByEmployeeAndMonth(ctx, "E101", "2024-06")
	require.NoError(t, err)
	assert.Nil(t, first, "first schedule of a failed batch must not be kept")
}
