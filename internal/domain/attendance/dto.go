package attendance

import (
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string   `json:"-" validate:"required"`
	Method     string   `json:"method" validate:"required,oneof=qr gps token"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

func (r *CheckInRequest) Validate() error {
	return validator.Struct(r)
}

type CheckOutRequest struct {
	EmployeeID string   `json:"-" validate:"required"`
	Method     string   `json:"method" validate:"required,oneof=qr gps token"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

func (r *CheckOutRequest) Validate() error {
	return validator.Struct(r)
}

type AttendanceResponse struct {
	ID             string         `json:"id"`
	EmployeeID     string         `json:"employee_id"`
	Date           string         `json:"date"`
	CheckIn        *string        `json:"check_in,omitempty"`
	CheckOut       *string        `json:"check_out,omitempty"`
	LateMinutes    int            `json:"late_minutes"`
	TotalHours     float64        `json:"total_hours"`
	AbsenceType    AbsenceType    `json:"absence_type"`
	CheckInMethod  *CaptureMethod `json:"check_in_method,omitempty"`
	CheckOutMethod *CaptureMethod `json:"check_out_method,omitempty"`
}

type MonthlyAttendanceResponse struct {
	EmployeeID string               `json:"employee_id"`
	Month      string               `json:"month"`
	Records    []AttendanceResponse `json:"records"`
}

// timePtrToString formats an optional timestamp as RFC3339.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Date:           a.Date,
		CheckIn:        timePtrToString(a.CheckIn),
		CheckOut:       timePtrToString(a.CheckOut),
		LateMinutes:    a.LateMinutes,
		TotalHours:     a.TotalHours,
		AbsenceType:    a.AbsenceType,
		CheckInMethod:  a.CheckInMethod,
		CheckOutMethod: a.CheckOutMethod,
	}
}
