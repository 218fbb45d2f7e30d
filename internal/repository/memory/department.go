package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
)

type DepartmentRepository struct {
	store *Store
}

func NewDepartmentRepository(store *Store) *DepartmentRepository {
	return &DepartmentRepository{store: store}
}

func (r *DepartmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.conflicts(d) {
		return department.Department{}, department.ErrDepartmentExists
	}
	if d.ID == "" {
		d.ID = newID()
	}

	now := r.store.now()
	d.Positions = slices.Clone(d.Positions)
	d.CreatedAt = now
	d.UpdatedAt = now
	r.store.departments[d.ID] = d
	return cloneDepartment(d), nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d department.Department) (department.Department, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.departments[d.ID]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	if r.conflicts(d) {
		return department.Department{}, department.ErrDepartmentExists
	}

	// Positions are changed through the position methods only.
	d.Positions = existing.Positions
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = r.store.now()
	r.store.departments[d.ID] = d
	return cloneDepartment(d), nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.departments[id]; !ok {
		return department.ErrDepartmentNotFound
	}
	delete(r.store.departments, id)
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, ok := r.store.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return cloneDepartment(d), nil
}

func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (department.Department, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, d := range r.store.departments {
		if d.Name == name {
			return cloneDepartment(d), nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *DepartmentRepository) List(ctx context.Context) ([]department.Department, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]department.Department, 0, len(r.store.departments))
	for _, d := range r.store.departments {
		result = append(result, cloneDepartment(d))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *DepartmentRepository) AddPosition(ctx context.Context, departmentID, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.departments[departmentID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	if d.HasPosition(name) {
		return department.ErrPositionExists
	}

	d.Positions = append(slices.Clone(d.Positions), name)
	d.UpdatedAt = r.store.now()
	r.store.departments[departmentID] = d
	return nil
}

func (r *DepartmentRepository) RenamePosition(ctx context.Context, departmentID, oldName, newName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.departments[departmentID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	i := slices.Index(d.Positions, oldName)
	if i < 0 {
		return department.ErrPositionNotFound
	}
	if d.HasPosition(newName) {
		return department.ErrPositionExists
	}

	d.Positions = slices.Clone(d.Positions)
	d.Positions[i] = newName
	d.UpdatedAt = r.store.now()
	r.store.departments[departmentID] = d
	return nil
}

func (r *DepartmentRepository) DeletePosition(ctx context.Context, departmentID, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.departments[departmentID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	i := slices.Index(d.Positions, name)
	if i < 0 {
		return department.ErrPositionNotFound
	}

	d.Positions = slices.Delete(slices.Clone(d.Positions), i, i+1)
	d.UpdatedAt = r.store.now()
	r.store.departments[departmentID] = d
	return nil
}

// conflicts reports whether another department already uses d's name or code.
// Callers hold the lock.
func (r *DepartmentRepository) conflicts(d department.Department) bool {
	for _, other := range r.store.departments {
		if other.ID == d.ID {
			continue
		}
		if other.Name == d.Name || strings.EqualFold(other.Code, d.Code) {
			return true
		}
	}
	return false
}

func cloneDepartment(d department.Department) department.Department {
	d.Positions = slices.Clone(d.Positions)
	if d.Positions == nil {
		d.Positions = []string{}
	}
	return d
}
