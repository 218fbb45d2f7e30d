package memory

import (
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
)

// Seed loads a small hotel directory, its departments and the KPI catalogue for
// the memory storage mode.
func Seed(store *Store) {
	employees := NewEmployeeRepository(store)
	for _, e := range []employee.Employee{
		{ID: "E000", Name: "Admin User", Email: "admin@hotel.com", Department: "HRD", Position: "HR Director", Role: employee.RoleAdmin, Status: employee.StatusActive},
		{ID: "E100", Name: "David Chen", Email: "fo.head@hotel.com", Department: "Front Office", Position: "Front Office Manager", Role: employee.RoleDeptHead, Status: employee.StatusActive},
		{ID: "E101", Name: "John Doe", Email: "john.doe@hotel.com", Department: "Front Office", Position: "Receptionist", Role: employee.RoleEmployee, Status: employee.StatusActive},
		{ID: "E102", Name: "Alice Johnson", Email: "alice.j@hotel.com", Department: "Front Office", Position: "Concierge", Role: employee.RoleEmployee, Status: employee.StatusProbation},
		{ID: "E200", Name: "Maria Garcia", Email: "hk.head@hotel.com", Department: "Housekeeping", Position: "Executive Housekeeper", Role: employee.RoleDeptHead, Status: employee.StatusActive},
		{ID: "E201", Name: "Jane Smith", Email: "jane.smith@hotel.com", Department: "Housekeeping", Position: "Room Attendant", Role: employee.RoleEmployee, Status: employee.StatusActive},
	} {
		employees.Put(e)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	for _, d := range []department.Department{
		{ID: "D01", Name: "HRD", Code: "HRD", Description: "Human resources", Positions: []string{"HR Director", "HR Officer"}},
		{ID: "D02", Name: "Front Office", Code: "FO", HeadID: "E100", Description: "Reception and guest services", Positions: []string{"Front Office Manager", "Receptionist", "Concierge"}},
		{ID: "D03", Name: "Housekeeping", Code: "HK", HeadID: "E200", Description: "Rooms and laundry", Positions: []string{"Executive Housekeeper", "Room Attendant", "Laundry Attendant"}},
	} {
		d.Status = department.StatusActive
		d.CreatedAt = now
		d.UpdatedAt = now
		store.departments[d.ID] = d
	}

	for _, k := range []kpi.Kpi{
		{ID: kpi.AttendanceKpiID, Department: kpi.DepartmentAll, Name: "Punctuality", Description: "Auto-calculated based on attendance records.", Weight: 10},
		{ID: "K01", Department: "Front Office", Name: "Guest Satisfaction", Description: "Score from guest surveys", Weight: 40},
		{ID: "K02", Department: "Front Office", Name: "Grooming", Description: "Adherence to uniform standards", Weight: 20},
		{ID: "K03", Department: "Front Office", Name: "Accuracy Check-in/out", Description: "Error rate in registration process", Weight: 20},
		{ID: "K04", Department: "Front Office", Name: "Complaint Handling", Description: "Effective resolution of guest issues", Weight: 10},
		{ID: "K05", Department: "Housekeeping", Name: "Room Quality", Description: "Cleanliness and preparation score", Weight: 50},
		{ID: "K06", Department: "Housekeeping", Name: "Speed", Description: "Time taken per room", Weight: 20},
		{ID: "K07", Department: "Housekeeping", Name: "Linen Usage", Description: "Efficient use of linens", Weight: 10},
		{ID: "K08", Department: "Housekeeping", Name: "Checklist Completion", Description: "100% completion of room checklist", Weight: 10},
	} {
		k.CreatedAt = now
		k.UpdatedAt = now
		store.kpis = append(store.kpis, k)
	}
}
