// Package memory keeps every repository in process memory. It backs the
// memory storage mode and the service tests.
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/google/uuid"
)

// Store holds the shared state of the memory repositories.
type Store struct {
	mu sync.RWMutex

	// txMu serializes transactions; see Transactor.
	txMu sync.Mutex

	employees   map[string]employee.Employee
	departments map[string]department.Department
	attendance  map[string]attendance.Attendance // keyed by employee id + date
	schedules   map[string]schedule.EmployeeSchedule
	assessments map[string]assessment.SelfAssessment // keyed by employee id + month
	kpis        []kpi.Kpi
	scores      []kpi.Score
	feedback    []feedback.Feedback

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		departments: make(map[string]department.Department),
		attendance:  make(map[string]attendance.Attendance),
		schedules:   make(map[string]schedule.EmployeeSchedule),
		assessments: make(map[string]assessment.SelfAssessment),
		now:         time.Now,
	}
}

// snapshot is a copy of the store contents a failed transaction rolls back to.
type snapshot struct {
	employees   map[string]employee.Employee
	departments map[string]department.Department
	attendance  map[string]attendance.Attendance
	schedules   map[string]schedule.EmployeeSchedule
	assessments map[string]assessment.SelfAssessment
	kpis        []kpi.Kpi
	scores      []kpi.Score
	feedback    []feedback.Feedback
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	departments := make(map[string]department.Department, len(s.departments))
	for id, d := range s.departments {
		d.Positions = slices.Clone(d.Positions)
		departments[id] = d
	}

	return snapshot{
		employees:   maps.Clone(s.employees),
		departments: departments,
		attendance:  maps.Clone(s.attendance),
		schedules:   maps.Clone(s.schedules),
		assessments: maps.Clone(s.assessments),
		kpis:        slices.Clone(s.kpis),
		scores:      slices.Clone(s.scores),
		feedback:    slices.Clone(s.feedback),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = snap.employees
	s.departments = snap.departments
	s.attendance = snap.attendance
	s.schedules = snap.schedules
	s.assessments = snap.assessments
	s.kpis = snap.kpis
	s.scores = snap.scores
	s.feedback = snap.feedback
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func key(employeeID, suffix string) string {
	return employeeID + "|" + suffix
}
