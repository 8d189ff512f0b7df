// Package memory holds in-process implementations of the repositories. They
// back the demo mode and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

type RecordStore struct {
	mu          sync.RWMutex
	departments map[int64]analytics.Department
	employees   map[int64]analytics.Employee
	contracts   []analytics.Contract
	attendance  []analytics.Attendance
	leaves      []analytics.LeaveRequest
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		departments: make(map[int64]analytics.Department),
		employees:   make(map[int64]analytics.Employee),
	}
}

var _ analytics.RecordStore = (*RecordStore)(nil)

func (s *RecordStore) AddDepartment(d analytics.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[d.ID] = d
}

func (s *RecordStore) AddEmployee(e analytics.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

func (s *RecordStore) AddContract(c analytics.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts = append(s.contracts, c)
}

func (s *RecordStore) AddAttendance(a analytics.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = append(s.attendance, a)
}

func (s *RecordStore) AddLeave(l analytics.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append(s.leaves, l)
}

// employeeDepartment resolves the employee -> department join. Caller holds mu.
func (s *RecordStore) employeeDepartment(employeeID int64) (*int64, *string) {
	e, ok := s.employees[employeeID]
	if !ok || e.DepartmentID == nil {
		return nil, nil
	}
	id := *e.DepartmentID
	if d, ok := s.departments[id]; ok {
		name := d.Name
		return &id, &name
	}
	return &id, nil
}

func (s *RecordStore) FindEmployees(ctx context.Context, filter analytics.Filter) ([]analytics.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []analytics.Employee
	for _, e := range s.employees {
		e.DepartmentID, e.DepartmentName = s.employeeDepartment(e.ID)
		if filter.Match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RecordStore) CountEmployees(ctx context.Context, filter analytics.Filter) (int64, error) {
	employees, err := s.FindEmployees(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(employees)), nil
}

func (s *RecordStore) FindContracts(ctx context.Context, filter analytics.Filter) ([]analytics.Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []analytics.Contract
	for _, c := range s.contracts {
		c.DepartmentID, c.DepartmentName = s.employeeDepartment(c.EmployeeID)
		if filter.Match(c) {
			out = append(out, c)
		}
	}
	// Newest contract of each employee first, as the SQL adapter orders them.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *RecordStore) FindAttendance(ctx context.Context, filter analytics.Filter) ([]analytics.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []analytics.Attendance
	for _, a := range s.attendance {
		a.DepartmentID, _ = s.employeeDepartment(a.EmployeeID)
		if filter.Match(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *RecordStore) FindLeaves(ctx context.Context, filter analytics.Filter) ([]analytics.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []analytics.LeaveRequest
	for _, l := range s.leaves {
		l.DepartmentID, _ = s.employeeDepartment(l.EmployeeID)
		if filter.Match(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *RecordStore) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.departments[id]
	return ok, nil
}

// DepartmentName returns the name of a department, nil when id is nil or unknown.
func (s *RecordStore) DepartmentName(id *int64) *string {
	if s == nil || id == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.departments[*id]
	if !ok {
		return nil
	}
	name := d.Name
	return &name
}

func (s *RecordStore) FindDepartments(ctx context.Context) ([]analytics.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]analytics.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
