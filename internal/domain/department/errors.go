package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("department with this name or code already exists")
	ErrDepartmentInUse    = errors.New("department still has employees assigned")
	ErrReservedName       = errors.New("department name is reserved")
	ErrHeadIsAdmin        = errors.New("an admin cannot head a department")

	ErrPositionNotFound = errors.New("position not found in department")
	ErrPositionExists   = errors.New("position already exists in department")
	ErrPositionInUse    = errors.New("position is assigned to one or more employees")
)
