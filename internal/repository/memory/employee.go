package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
)

type EmployeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// Put inserts or replaces a directory entry without any checks. It is how the
// store is seeded.
func (r *EmployeeRepository) Put(e employee.Employee) employee.Employee {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	if e.ID == "" {
		e.ID = newID()
	}
	if existing, ok := r.store.employees[e.ID]; ok {
		e.CreatedAt = existing.CreatedAt
	} else {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	r.store.employees[e.ID] = e
	return e
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.employees {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) ListByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	return r.list(func(e employee.Employee) bool {
		return e.IsActive() && e.Department == department
	}), nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.list(func(e employee.Employee) bool {
		return e.IsActive() && e.Role != employee.RoleAdmin
	}), nil
}

func (r *EmployeeRepository) ListAll(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	return r.list(func(e employee.Employee) bool {
		return (filter.Department == "" || e.Department == filter.Department) &&
			(filter.Role == "" || string(e.Role) == filter.Role) &&
			(filter.Status == "" || string(e.Status) == filter.Status)
	}), nil
}

func (r *EmployeeRepository) ListDepartments(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, e := range r.list(employee.Employee.IsActive) {
		seen[e.Department] = true
	}

	departments := make([]string, 0, len(seen))
	for d := range seen {
		departments = append(departments, d)
	}
	sort.Strings(departments)
	return departments, nil
}

func (r *EmployeeRepository) CountByDepartment(ctx context.Context) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, e := range r.store.employees {
		counts[e.Department]++
	}
	return counts, nil
}

func (r *EmployeeRepository) CountByPosition(ctx context.Context, department, position string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, e := range r.store.employees {
		if e.Department == department && e.Position == position {
			count++
		}
	}
	return count, nil
}

func (r *EmployeeRepository) NextID(ctx context.Context) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	highest := 0
	for id := range r.store.employees {
		if n, ok := employeeNumber(id); ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("E%03d", highest+1), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[e.ID]; ok {
		return employee.Employee{}, fmt.Errorf("employee %s already exists", e.ID)
	}
	for _, existing := range r.store.employees {
		if strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	now := r.store.now()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.store.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	for _, other := range r.store.employees {
		if other.ID != e.ID && strings.EqualFold(other.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = r.store.now()
	r.store.employees[e.ID] = e
	return e, nil
}

// Delete removes the employee together with their attendance, schedules,
// scores, feedback and self-assessments.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.store.employees, id)

	for k, a := range r.store.attendance {
		if a.EmployeeID == id {
			delete(r.store.attendance, k)
		}
	}
	for k, s := range r.store.schedules {
		if s.EmployeeID == id {
			delete(r.store.schedules, k)
		}
	}
	for k, a := range r.store.assessments {
		if a.EmployeeID == id {
			delete(r.store.assessments, k)
		}
	}

	scores := r.store.scores[:0:0]
	for _, s := range r.store.scores {
		if s.EmployeeID != id {
			scores = append(scores, s)
		}
	}
	r.store.scores = scores

	feedback := r.store.feedback[:0:0]
	for _, f := range r.store.feedback {
		if f.EmployeeID != id {
			feedback = append(feedback, f)
		}
	}
	r.store.feedback = feedback

	for deptID, d := range r.store.departments {
		if d.HeadID == id {
			d.HeadID = ""
			r.store.departments[deptID] = d
		}
	}
	return nil
}

func (r *EmployeeRepository) RenameDepartment(ctx context.Context, oldName, newName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	for id, e := range r.store.employees {
		if e.Department == oldName {
			e.Department = newName
			e.UpdatedAt = now
			r.store.employees[id] = e
		}
	}
	return nil
}

func (r *EmployeeRepository) RenamePosition(ctx context.Context, department, oldName, newName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	for id, e := range r.store.employees {
		if e.Department == department && e.Position == oldName {
			e.Position = newName
			e.UpdatedAt = now
			r.store.employees[id] = e
		}
	}
	return nil
}

// list returns employees matching keep, ordered by name then id.
func (r *EmployeeRepository) list(keep func(employee.Employee) bool) []employee.Employee {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]employee.Employee, 0)
	for _, e := range r.store.employees {
		if keep(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// employeeNumber parses the numeric part of an E-prefixed id.
func employeeNumber(id string) (int, bool) {
	if !strings.HasPrefix(id, "E") {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
