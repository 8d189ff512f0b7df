package analytics

import "context"

// RecordStore is the read-only view of the HR records the analytics are
// computed from. Implementations translate Filter conditions into their own
// query language and perform the employee/department joins themselves.
type RecordStore interface {
	FindEmployees(ctx context.Context, filter Filter) ([]Employee, error)
	CountEmployees(ctx context.Context, filter Filter) (int64, error)
	FindContracts(ctx context.Context, filter Filter) ([]Contract, error)
	FindAttendance(ctx context.Context, filter Filter) ([]Attendance, error)
	FindLeaves(ctx context.Context, filter Filter) ([]LeaveRequest, error)

	DepartmentExists(ctx context.Context, id int64) (bool, error)
	FindDepartments(ctx context.Context) ([]Department, error)
}
