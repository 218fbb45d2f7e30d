package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrNotScheduledToWork = errors.New("you are not scheduled to work today")

	// Check-out errors
	ErrNotCheckedIn      = errors.New("you must check in before checking out")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// GPS capture errors
	ErrOutsideGeofence = errors.New("your location is outside the allowed check-in area")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateRecord    = errors.New("attendance record already exists for this date")
)
