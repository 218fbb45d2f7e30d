package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth boundary errors
	case errors.Is(err, jwt.ErrMissingClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, employee.ErrInsufficientRole):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrOutsideDepartment),
		errors.Is(err, employee.ErrNotTeamMember),
		errors.Is(err, employee.ErrOwnRecord):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Employee with this email already exists")
	case errors.Is(err, employee.ErrCannotDeleteSelf),
		errors.Is(err, employee.ErrLastAdmin):
		UnprocessableEntity(w, err.Error())

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrPositionNotFound):
		NotFound(w, "Position not found in department")
	case errors.Is(err, department.ErrDepartmentExists):
		Conflict(w, "Department with this name or code already exists")
	case errors.Is(err, department.ErrPositionExists):
		Conflict(w, "Position already exists in department")
	case errors.Is(err, department.ErrDepartmentInUse),
		errors.Is(err, department.ErrPositionInUse):
		Conflict(w, err.Error())
	case errors.Is(err, department.ErrReservedName),
		errors.Is(err, department.ErrHeadIsAdmin):
		UnprocessableEntity(w, err.Error())

	// Self-assessment domain errors
	case errors.Is(err, assessment.ErrSelfAssessmentNotFound):
		NotFound(w, "Self-assessment not found")
	case errors.Is(err, assessment.ErrFutureMonth):
		UnprocessableEntity(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in found for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance for this date already exists")
	case errors.Is(err, attendance.ErrNotScheduledToWork):
		UnprocessableEntity(w, "Not scheduled to work today")
	case errors.Is(err, attendance.ErrOutsideGeofence):
		UnprocessableEntity(w, "Location is outside the allowed check-in area")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")

	// KPI domain errors
	case errors.Is(err, kpi.ErrKpiNotFound):
		NotFound(w, "KPI not found")
	case errors.Is(err, kpi.ErrKpiExists):
		Conflict(w, "KPI with this id already exists")
	case errors.Is(err, kpi.ErrWeightExceeded),
		errors.Is(err, kpi.ErrAttendanceKpiScope),
		errors.Is(err, kpi.ErrAttendanceKpiNotScored),
		errors.Is(err, kpi.ErrKpiNotApplicable):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
