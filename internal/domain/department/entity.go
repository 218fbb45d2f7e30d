package department

import (
	"slices"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Department is a hotel department with the positions employees of it may
// hold. HeadID is empty when nobody heads it.
type Department struct {
	ID          string
	Name        string
	Code        string
	HeadID      string
	Description string
	Status      Status
	Positions   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d Department) HasPosition(name string) bool {
	return slices.Contains(d.Positions, name)
}
