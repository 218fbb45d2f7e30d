package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/geo"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Config holds the attendance rules that depend on the property.
type Config struct {
	Location *time.Location
	Geofence geo.Fence
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	hub          *sse.Hub
	loc          *time.Location
	fence        geo.Fence
	now          func() time.Time
}

// NewAttendanceService builds the service. hub may be nil, in which case no
// live events are published.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	cfg Config,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		ScheduleRepository:   scheduleRepo,
		employeeRepo:         employeeRepo,
		hub:                  hub,
		loc:                  cfg.Location,
		fence:                cfg.Geofence,
		now:                  time.Now,
	}
}

// checkLocation enforces the geofence on GPS captures.
func (a *AttendanceServiceImpl) checkLocation(employeeID, method string, lat, lng *float64) error {
	if attendance.CaptureMethod(method) != attendance.CaptureMethodGPS || !a.fence.Enabled() {
		return nil
	}
	if lat == nil || lng == nil {
		return validator.ValidationErrors{{Field: "latitude", Message: "latitude and longitude are required for gps capture"}}
	}

	p := geo.Point{Latitude: *lat, Longitude: *lng}
	if !a.fence.Contains(p) {
		slog.Warn("GPS capture outside geofence",
			"employee_id", employeeID,
			"distance_meters", int(geo.Distance(a.fence.Center, p)),
			"radius_meters", a.fence.RadiusMeters,
		)
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// publish pushes a record change to the employee's department feed.
func (a *AttendanceServiceImpl) publish(name, department string, record attendance.Attendance) {
	if a.hub == nil {
		return
	}
	a.hub.Publish(sse.Event{
		Topic: department,
		Name:  name,
		Data:  attendance.NewAttendanceResponse(record),
	})
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkLocation(req.EmployeeID, req.Method, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	dateLocal := nowLocal.Format(calendar.DateLayout)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, dateLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	month := calendar.MonthOf(nowLocal)
	sched, err := schedule.Resolve(ctx, a.ScheduleRepository, req.EmployeeID, month)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day := sched.DayOf(month, nowLocal.Day())
	if day.Status != schedule.StatusWorkday || day.StartTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotScheduledToWork
	}

	scheduledStart, err := calendar.At(dateLocal, *day.StartTime, a.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve scheduled start: %w", err)
	}

	lateMinutes := 0
	if nowLocal.After(scheduledStart) {
		lateMinutes = int(math.Floor(nowLocal.Sub(scheduledStart).Minutes()))
	}

	method := attendance.CaptureMethod(req.Method)
	checkIn := nowLocal.UTC()
	record := attendance.Attendance{
		EmployeeID:    req.EmployeeID,
		Date:          dateLocal,
		CheckIn:       &checkIn,
		LateMinutes:   lateMinutes,
		AbsenceType:   attendance.ClassifyArrival(lateMinutes),
		CheckInMethod: &method,
	}

	var saved attendance.Attendance
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if err := a.AttendanceRepository.Update(ctx, record); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		saved = record
	} else {
		saved, err = a.AttendanceRepository.Create(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	}

	if lateMinutes > 0 {
		slog.Info("Late check-in detected",
			"employee_id", req.EmployeeID,
			"date", dateLocal,
			"scheduled_start", *day.StartTime,
			"late_minutes", lateMinutes,
		)
	}
	a.publish(attendance.EventCheckIn, emp.Department, saved)

	return attendance.NewAttendanceResponse(saved), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkLocation(req.EmployeeID, req.Method, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	dateLocal := nowLocal.Format(calendar.DateLayout)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, dateLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := nowLocal.UTC()
	method := attendance.CaptureMethod(req.Method)

	updated := *record
	updated.CheckOut = &checkOut
	updated.CheckOutMethod = &method
	updated.TotalHours = decimal.NewFromFloat(checkOut.Sub(*record.CheckIn).Hours()).Round(2).InexactFloat64()
	if updated.AbsenceType == attendance.AbsenceTypeMissingCheckout {
		updated.AbsenceType = attendance.ClassifyArrival(updated.LateMinutes)
	}

	if err := a.AttendanceRepository.Update(ctx, updated); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	a.publish(attendance.EventCheckOut, emp.Department, updated)

	return attendance.NewAttendanceResponse(updated), nil
}

// GetMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyAttendance(ctx context.Context, employeeID, month string) (attendance.MonthlyAttendanceResponse, error) {
	m := calendar.MonthOf(a.now().In(a.loc))
	if month != "" {
		parsed, err := validator.MonthParam("month", month)
		if err != nil {
			return attendance.MonthlyAttendanceResponse{}, err
		}
		m = parsed
	}

	records, err := a.AttendanceRepository.ListByEmployeeAndMonth(ctx, employeeID, m.String())
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.MonthlyAttendanceResponse{
		EmployeeID: employeeID,
		Month:      m.String(),
		Records:    make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, attendance.NewAttendanceResponse(r))
	}

	return resp, nil
}

// FlagMissingCheckouts implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) FlagMissingCheckouts(ctx context.Context) (int, error) {
	today := a.now().In(a.loc).Format(calendar.DateLayout)

	open, err := a.AttendanceRepository.ListOpenBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendance: %w", err)
	}

	flagged := 0
	for _, r := range open {
		r.AbsenceType = attendance.AbsenceTypeMissingCheckout
		if err := a.AttendanceRepository.Update(ctx, r); err != nil {
			return flagged, fmt.Errorf("failed to flag missing checkout for %s on %s: %w", r.EmployeeID, r.Date, err)
		}
		flagged++

		if a.hub != nil {
			emp, err := a.employeeRepo.GetByID(ctx, r.EmployeeID)
			if err != nil {
				slog.Warn("Skipping missing checkout event", "employee_id", r.EmployeeID, "error", err)
				continue
			}
			a.publish(attendance.EventMissingCheckout, emp.Department, r)
		}
	}

	if flagged > 0 {
		slog.Info("Flagged missing checkouts", "before", today, "count", flagged)
	}

	return flagged, nil
}
