package employee

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDeptHead Role = "dept_head"
	RoleEmployee Role = "employee"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusProbation Status = "probation"
)

// AdminDepartment is where admin accounts are filed.
const AdminDepartment = "HRD"

type Employee struct {
	ID         string
	Name       string
	Email      string
	Department string
	Position   string
	Role       Role
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the employee still takes part in scheduling and
// evaluation. Probation counts as active.
func (e Employee) IsActive() bool {
	return e.Status != StatusInactive
}
