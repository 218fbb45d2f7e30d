package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/geo"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

type testEnv struct {
	svc       *AttendanceServiceImpl
	repo      *memory.AttendanceRepository
	schedules *memory.ScheduleRepository
	hub       *sse.Hub
}

func setupAttendanceService(t *testing.T) testEnv {
	t.Helper()

	store := memory.NewStore()
	memory.Seed(store)

	env := testEnv{
		repo:      memory.NewAttendanceRepository(store),
		schedules: memory.NewScheduleRepository(store),
		hub:       sse.NewHub(),
	}
	env.svc = NewAttendanceService(env.repo, env.schedules, memory.NewEmployeeRepository(store), env.hub, Config{Location: wib}).(*AttendanceServiceImpl)
	return env
}

func (e testEnv) at(t time.Time) {
	e.svc.now = func() time.Time { return t }
}

// Monday 3 June 2024, local time.
func june3(hour, min, sec int) time.Time {
	return time.Date(2024, time.June, 3, hour, min, sec, 0, wib)
}

func checkIn(t *testing.T, svc *AttendanceServiceImpl, employeeID string) (attendance.AttendanceResponse, error) {
	t.Helper()
	return svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: employeeID, Method: "qr"})
}

func TestAttendanceService_CheckIn_OnTime(t *testing.T) {
	env := setupAttendanceService(t)
	env.at(june3(8, 50, 0))

	got, err := checkIn(t, env.svc, "E101")

	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", got.Date)
	assert.Zero(t, got.LateMinutes)
	assert.Equal(t, attendance.AbsenceTypePresent, got.AbsenceType)
	require.NotNil(t, got.CheckInMethod)
	assert.Equal(t, attendance.CaptureMethodQR, *got.CheckInMethod)
}

func TestAttendanceService_CheckIn_LateFloorsMinutes(t *testing.T) {
	env := setupAttendanceService(t)
	env.at(june3(9, 12, 59))

	got, err := checkIn(t, env.svc, "E101")

	require.NoError(t, err)
	assert.Equal(t, 12, got.LateMinutes)
	assert.Equal(t, attendance.AbsenceTypeLate, got.AbsenceType)
}

func TestAttendanceService_CheckIn_UsesLocalDate(t *testing.T) {
	env := setupAttendanceService(t)
	// 23:30 UTC on Sunday is 06:30 Monday in WIB.
	env.at(time.Date(2024, time.June, 2, 23, 30, 0, 0, time.UTC))

	got, err := checkIn(t, env.svc, "E101")

	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", got.Date)
	assert.Zero(t, got.LateMinutes)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	env := setupAttendanceService(t)
	env.at(june3(8, 0, 0))

	_, err := checkIn(t, env.svc, "E101")
	require.NoError(t, err)

	_, err = checkIn(t, env.svc, "E101")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_DayOffRejectedWithoutRecord(t *testing.T) {
	env := setupAttendanceService(t)
	ctx := context.Background()

	// Saturday under the default schedule.
	env.at(time.Date(2024, time.June, 1, 9, 0, 0, 0, wib))
	_, err := checkIn(t, env.svc, "E101")
	assert.ErrorIs(t, err, attendance.ErrNotScheduledToWork)

	rec, err := env.repo.GetByEmployeeAndDate(ctx, "E101", "2024-06-01")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// A weekday marked as leave in a stored schedule.
	_, err = env.schedules.Upsert(ctx, schedule.EmployeeSchedule{
		EmployeeID: "E101",
		Month:      "2024-06",
		Days:       map[string]schedule.Day{"03": schedule.Off(schedule.StatusOnLeave)},
	})
	require.NoError(t, err)

	env.at(june3(9, 0, 0))
	_, err = checkIn(t, env.svc, "E101")
	assert.ErrorIs(t, err, attendance.ErrNotScheduledToWork)

	rec, err = env.repo.GetByEmployeeAndDate(ctx, "E101", "2024-06-03")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAttendanceService_CheckIn_StoredShiftStart(t *testing.T) {
	env := setupAttendanceService(t)
	_, err := env.schedules.Upsert(context.Background(), schedule.EmployeeSchedule{
		EmployeeID: "E101",
		Month:      "2024-06",
		Days:       map[string]schedule.Day{"03": schedule.Workday("13:00", "21:00")},
	})
	require.NoError(t, err)

	env.at(june3(13, 5, 0))
	got, err := checkIn(t, env.svc, "E101")

	require.NoError(t, err)
	assert.Equal(t, 5, got.LateMinutes)
}

func TestAttendanceService_CheckIn_InvalidRequest(t *testing.T) {
	env := setupAttendanceService(t)
	env.at(june3(8, 0, 0))

	_, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "E101", Method: "fax"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = checkIn(t, env.svc, "E999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_CheckOut(t *testing.T) {
	env := setupAttendanceService(t)
	ctx := context.Background()
	out := attendance.CheckOutRequest{EmployeeID: "E101", Method: "gps"}

	env.at(june3(7, 0, 0))
	_, err := env.svc.CheckOut(ctx, out)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	env.at(june3(9, 12, 30))
	_, err = checkIn(t, env.svc, "E101")
	require.NoError(t, err)

	env.at(june3(17, 20, 18))
	got, err := env.svc.CheckOut(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, 8.13, got.TotalHours)
	assert.Equal(t, attendance.AbsenceTypeLate, got.AbsenceType)
	require.NotNil(t, got.CheckOutMethod)
	assert.Equal(t, attendance.CaptureMethodGPS, *got.CheckOutMethod)

	_, err = env.svc.CheckOut(ctx, out)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_FlagMissingCheckouts(t *testing.T) {
	env := setupAttendanceService(t)
	ctx := context.Background()

	env.at(june3(9, 30, 0))
	_, err := checkIn(t, env.svc, "E101")
	require.NoError(t, err)
	_, err = checkIn(t, env.svc, "E201")
	require.NoError(t, err)

	// Same day sweep leaves today's open records alone.
	flagged, err := env.svc.FlagMissingCheckouts(ctx)
	require.NoError(t, err)
	assert.Zero(t, flagged)

	env.at(time.Date(2024, time.June, 4, 0, 5, 0, 0, wib))
	flagged, err = env.svc.FlagMissingCheckouts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, flagged)

	rec, err := env.repo.GetByEmployeeAndDate(ctx, "E101", "2024-06-03")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.AbsenceTypeMissingCheckout, rec.AbsenceType)
	assert.Equal(t, 30, rec.LateMinutes)

	flagged, err = env.svc.FlagMissingCheckouts(ctx)
	require.NoError(t, err)
	assert.Zero(t, flagged)
}

func TestAttendanceService_CheckOut_RevertsMissingCheckout(t *testing.T) {
	env := setupAttendanceService(t)
	ctx := context.Background()

	env.at(june3(9, 30, 0))
	_, err := checkIn(t, env.svc, "E101")
	require.NoError(t, err)

	env.at(time.Date(2024, time.June, 4, 0, 5, 0, 0, wib))
	_, err = env.svc.FlagMissingCheckouts(ctx)
	require.NoError(t, err)

	// A late checkout recorded against the same local day.
	env.at(june3(23, 59, 0))
	got, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "E101", Method: "token"})

	require.NoError(t, err)
	assert.Equal(t, attendance.AbsenceTypeLate, got.AbsenceType)
}

func TestAttendanceService_GetMonthlyAttendance(t *testing.T) {
	env := setupAttendanceService(t)
	ctx := context.Background()

	for _, ts := range []time.Time{june3(8, 0, 0), june3(8, 0, 0).AddDate(0, 0, 1), june3(8, 0, 0).AddDate(0, 0, 28)} {
		env.at(ts)
		_, err := checkIn(t, env.svc, "E101")
		require.NoError(t, err)
	}

	got, err := env.svc.GetMonthlyAttendance(ctx, "E101", "2024-06")
	require.NoError(t, err)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "2024-06-03", got.Records[0].Date)
	assert.Equal(t, "2024-06-04", got.Records[1].Date)

	// Defaults to the current month.
	got, err = env.svc.GetMonthlyAttendance(ctx, "E101", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-07", got.Month)
	assert.Len(t, got.Records, 1)

	_, err = env.svc.GetMonthlyAttendance(ctx, "E101", "July")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAttendanceService_PublishesDepartmentEvents(t *testing.T) {
	env := setupAttendanceService(t)
	ctx := context.Background()

	frontOffice, cleanupFO := env.hub.Subscribe("Front Office")
	defer cleanupFO()
	housekeeping, cleanupHK := env.hub.Subscribe("Housekeeping")
	defer cleanupHK()

	env.at(june3(9, 5, 0))
	_, err := checkIn(t, env.svc, "E101")
	require.NoError(t, err)

	env.at(june3(17, 0, 0))
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "E101", Method: "qr"})
	require.NoError(t, err)

	env.at(june3(9, 0, 0).AddDate(0, 0, 1))
	_, err = checkIn(t, env.svc, "E201")
	require.NoError(t, err)
	env.at(june3(9, 0, 0).AddDate(0, 0, 2))
	_, err = env.svc.FlagMissingCheckouts(ctx)
	require.NoError(t, err)

	require.Len(t, frontOffice, 2)
	in := <-frontOffice
	assert.Equal(t, attendance.EventCheckIn, in.Name)
	assert.Equal(t, 5, in.Data.(attendance.AttendanceResponse).LateMinutes)
	assert.Equal(t, attendance.EventCheckOut, (<-frontOffice).Name)

	require.Len(t, housekeeping, 2)
	assert.Equal(t, attendance.EventCheckIn, (<-housekeeping).Name)
	assert.Equal(t, attendance.EventMissingCheckout, (<-housekeeping).Name)
}

func TestAttendanceService_WithoutHub(t *testing.T) {
	env := setupAttendanceService(t)
	env.svc.hub = nil
	env.at(june3(9, 0, 0))

	_, err := checkIn(t, env.svc, "E101")

	assert.NoError(t, err)
}

func TestAttendanceService_GeofenceOnGPSCapture(t *testing.T) {
	env := setupAttendanceService(t)
	env.svc.fence = geo.Fence{Center: geo.Point{Latitude: -8.7180, Longitude: 115.1690}, RadiusMeters: 200}
	env.at(june3(8, 55, 0))
	ctx := context.Background()

	lat, lng := -8.7185, 115.1693
	farLat, farLng := -8.6500, 115.2167

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "E101", Method: "gps"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "E101", Method: "gps", Latitude: &farLat, Longitude: &farLng})
	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)

	rec, err := env.repo.GetByEmployeeAndDate(ctx, "E101", "2024-06-03")
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "E101", Method: "gps", Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)

	// QR captures ignore the fence.
	_, err = checkIn(t, env.svc, "E201")
	assert.NoError(t, err)
}
