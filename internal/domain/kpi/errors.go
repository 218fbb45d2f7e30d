package kpi

import "errors"

var (
	ErrKpiNotFound            = errors.New("kpi not found")
	ErrKpiExists              = errors.New("kpi with this id already exists")
	ErrWeightExceeded         = errors.New("kpi weights applicable to a department must not exceed 100")
	ErrAttendanceKpiScope     = errors.New("the attendance kpi must apply to all departments")
	ErrAttendanceKpiNotScored = errors.New("the attendance kpi is computed automatically and cannot be scored manually")
	ErrKpiNotApplicable       = errors.New("kpi does not apply to the employee's department")
)
