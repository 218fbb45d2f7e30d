package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("employee with this email already exists")
	ErrInsufficientRole  = errors.New("your role is not allowed to perform this action")
	ErrOutsideDepartment = errors.New("employee belongs to another department")
	ErrNotTeamMember     = errors.New("employee is not a member of your team")
	ErrOwnRecord         = errors.New("you cannot evaluate or schedule yourself")
	ErrCannotDeleteSelf  = errors.New("you cannot delete your own account")
	ErrLastAdmin         = errors.New("at least one admin account must remain")
)
