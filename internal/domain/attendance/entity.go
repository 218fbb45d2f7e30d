package attendance

import (
	"time"
)

type AbsenceType string

const (
	AbsenceTypePresent         AbsenceType = "present"
	AbsenceTypeLate            AbsenceType = "late"
	AbsenceTypeAbsent          AbsenceType = "absent" // inferred only, never stored
	AbsenceTypeOnLeave         AbsenceType = "on_leave"
	AbsenceTypeMissingCheckout AbsenceType = "missing_checkout"
)

func (t AbsenceType) IsValid() bool {
	switch t {
	case AbsenceTypePresent, AbsenceTypeLate, AbsenceTypeAbsent, AbsenceTypeOnLeave, AbsenceTypeMissingCheckout:
		return true
	}
	return false
}

// ClassifyArrival returns late when any minutes were lost, present otherwise.
func ClassifyArrival(lateMinutes int) AbsenceType {
	if lateMinutes > 0 {
		return AbsenceTypeLate
	}
	return AbsenceTypePresent
}

type CaptureMethod string

const (
	CaptureMethodQR    CaptureMethod = "qr"
	CaptureMethodGPS   CaptureMethod = "gps"
	CaptureMethodToken CaptureMethod = "token"
)

var CaptureMethodValues = []string{
	string(CaptureMethodQR),
	string(CaptureMethodGPS),
	string(CaptureMethodToken),
}

// Attendance is the single record of one employee for one calendar date.
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           string // YYYY-MM-DD
	CheckIn        *time.Time
	CheckOut       *time.Time
	LateMinutes    int
	TotalHours     float64
	AbsenceType    AbsenceType
	CheckInMethod  *CaptureMethod
	CheckOutMethod *CaptureMethod
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOpen reports a check-in without a check-out.
func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// Live feed event names.
const (
	EventCheckIn         = "attendance.check_in"
	EventCheckOut        = "attendance.check_out"
	EventMissingCheckout = "attendance.missing_checkout"
)
