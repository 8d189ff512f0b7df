package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/memory"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }

func wage(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// newFixtureStore builds a small company:
//
//	Engineering(1): employees 1, 2 active and 3 inactive
//	Sales(2):       employee 4 active
//	no department:  employee 5 active
func newFixtureStore() *memory.RecordStore {
	s := memory.NewRecordStore()

	s.AddDepartment(analytics.Department{ID: 1, Name: "Engineering"})
	s.AddDepartment(analytics.Department{ID: 2, Name: "Sales"})

	s.AddEmployee(analytics.Employee{ID: 1, Name: "Ayu", Active: true, DepartmentID: ptr(int64(1))})
	s.AddEmployee(analytics.Employee{ID: 2, Name: "Budi", Active: true, DepartmentID: ptr(int64(1))})
	s.AddEmployee(analytics.Employee{ID: 3, Name: "Citra", Active: false, DepartmentID: ptr(int64(1))})
	s.AddEmployee(analytics.Employee{ID: 4, Name: "Dewi", Active: true, DepartmentID: ptr(int64(2))})
	s.AddEmployee(analytics.Employee{ID: 5, Name: "Eko", Active: true})

	s.AddContract(analytics.Contract{ID: 1, EmployeeID: 1, State: analytics.ContractStateOpen, Wage: wage(1000)})
	s.AddContract(analytics.Contract{ID: 2, EmployeeID: 2, State: analytics.ContractStateOpen, Wage: wage(3000)})
	s.AddContract(analytics.Contract{ID: 3, EmployeeID: 3, State: "close", Wage: wage(2000)})
	s.AddContract(analytics.Contract{ID: 4, EmployeeID: 4, State: analytics.ContractStateOpen, Wage: wage(5000)})
	s.AddContract(analytics.Contract{ID: 5, EmployeeID: 5, State: analytics.ContractStateOpen})

	s.AddAttendance(analytics.Attendance{ID: 1, EmployeeID: 1, CheckIn: day(2024, 6, 10, 8), WorkedHours: ptr(8.0)})
	s.AddAttendance(analytics.Attendance{ID: 2, EmployeeID: 1, CheckIn: day(2024, 6, 11, 8), WorkedHours: ptr(6.0)})
	s.AddAttendance(analytics.Attendance{ID: 3, EmployeeID: 2, CheckIn: day(2024, 6, 10, 9), WorkedHours: ptr(0.0)})
	s.AddAttendance(analytics.Attendance{ID: 4, EmployeeID: 4, CheckIn: day(2024, 6, 12, 8), WorkedHours: ptr(7.0)})

	s.AddLeave(analytics.LeaveRequest{ID: 1, EmployeeID: 1, State: analytics.LeaveStateValidate, RequestDateFrom: ptr(day(2024, 6, 3, 0))})
	s.AddLeave(analytics.LeaveRequest{ID: 2, EmployeeID: 2, State: analytics.LeaveStateValidate, RequestDateFrom: ptr(day(2024, 5, 20, 0))})
	s.AddLeave(analytics.LeaveRequest{ID: 3, EmployeeID: 2, State: "draft", RequestDateFrom: ptr(day(2024, 6, 4, 0))})
	s.AddLeave(analytics.LeaveRequest{ID: 4, EmployeeID: 4, State: analytics.LeaveStateValidate, RequestDateFrom: ptr(day(2023, 12, 1, 0))})

	return s
}

var errStoreDown = errors.New("connection refused")

// failingStore fails every read of one kind.
type failingStore struct {
	*memory.RecordStore
	failContracts   bool
	failDepartments bool
}

func (f *failingStore) FindContracts(ctx context.Context, filter analytics.Filter) ([]analytics.Contract, error) {
	if f.failContracts {
		return nil, errStoreDown
	}
	return f.RecordStore.FindContracts(ctx, filter)
}

func (f *failingStore) FindDepartments(ctx context.Context) ([]analytics.Department, error) {
	if f.failDepartments {
		return nil, errStoreDown
	}
	return f.RecordStore.FindDepartments(ctx)
}

func (f *failingStore) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	if f.failDepartments {
		return false, errStoreDown
	}
	return f.RecordStore.DepartmentExists(ctx, id)
}
