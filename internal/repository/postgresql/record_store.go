package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type recordStoreImpl struct {
	db *database.DB
}

func NewRecordStore(db *database.DB) analytics.RecordStore {
	return &recordStoreImpl{db: db}
}

// FindEmployees implements analytics.RecordStore.
func (r *recordStoreImpl) FindEmployees(ctx context.Context, filter analytics.Filter) ([]analytics.Employee, error) {
	q := GetQuerier(ctx, r.db)

	where, args, err := buildWhere(filter, employeeColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.name, e.active, e.department_id, d.name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		%s
		ORDER BY e.id
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []analytics.Employee
	for rows.Next() {
		var emp analytics.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Active, &emp.DepartmentID, &emp.DepartmentName); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// CountEmployees implements analytics.RecordStore.
func (r *recordStoreImpl) CountEmployees(ctx context.Context, filter analytics.Filter) (int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, err := buildWhere(filter, employeeColumns, 1)
	if err != nil {
		return 0, err
	}

	var count int64
	err = q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM employees e %s`, where), args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// FindContracts implements analytics.RecordStore.
func (r *recordStoreImpl) FindContracts(ctx context.Context, filter analytics.Filter) ([]analytics.Contract, error) {
	q := GetQuerier(ctx, r.db)

	where, args, err := buildWhere(filter, contractColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.employee_id, c.state, c.wage, e.department_id, d.name
		FROM contracts c
		JOIN employees e ON e.id = c.employee_id
		LEFT JOIN departments d ON d.id = e.department_id
		%s
		ORDER BY c.employee_id, c.date_start DESC NULLS LAST, c.id DESC
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []analytics.Contract
	for rows.Next() {
		var (
			c    analytics.Contract
			wage decimal.NullDecimal
		)
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.State, &wage, &c.DepartmentID, &c.DepartmentName); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		if wage.Valid {
			w := wage.Decimal
			c.Wage = &w
		}
		contracts = append(contracts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return contracts, nil
}

// FindAttendance implements analytics.RecordStore.
func (r *recordStoreImpl) FindAttendance(ctx context.Context, filter analytics.Filter) ([]analytics.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where, args, err := buildWhere(filter, attendanceColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.check_in, a.worked_hours, e.department_id
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.check_in
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []analytics.Attendance
	for rows.Next() {
		var a analytics.Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.CheckIn, &a.WorkedHours, &a.DepartmentID); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// FindLeaves implements analytics.RecordStore.
func (r *recordStoreImpl) FindLeaves(ctx context.Context, filter analytics.Filter) ([]analytics.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	where, args, err := buildWhere(filter, leaveColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT l.id, l.employee_id, l.state, l.request_date_from, e.department_id
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		%s
		ORDER BY l.request_date_from
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []analytics.LeaveRequest
	for rows.Next() {
		var l analytics.LeaveRequest
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.State, &l.RequestDateFrom, &l.DepartmentID); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// DepartmentExists implements analytics.RecordStore.
func (r *recordStoreImpl) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department %d: %w", id, err)
	}
	return exists, nil
}

// FindDepartments implements analytics.RecordStore.
func (r *recordStoreImpl) FindDepartments(ctx context.Context) ([]analytics.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM departments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []analytics.Department
	for rows.Next() {
		var d analytics.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}
