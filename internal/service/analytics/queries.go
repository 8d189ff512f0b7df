package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

// Headcount returns the active and inactive employee counts for the
// department filter (all departments when deptID is nil).
func Headcount(ctx context.Context, store analytics.RecordStore, deptID *int64) (active int64, inactive int64, err error) {
	base := analytics.Filter{}.InDepartment(deptID)

	active, err = store.CountEmployees(ctx, base.Where(analytics.FieldActive, analytics.OpEq, true))
	if err != nil {
		return 0, 0, storeErr("employees", err)
	}
	inactive, err = store.CountEmployees(ctx, base.Where(analytics.FieldActive, analytics.OpEq, false))
	if err != nil {
		return 0, 0, storeErr("employees", err)
	}
	return active, inactive, nil
}

// KPIScores scores every active employee of the department filter.
func KPIScores(ctx context.Context, store analytics.RecordStore, deptID *int64, now time.Time) ([]float64, error) {
	employees, err := store.FindEmployees(ctx, analytics.Filter{}.
		Where(analytics.FieldActive, analytics.OpEq, true).
		InDepartment(deptID))
	if err != nil {
		return nil, storeErr("employees", err)
	}
	if len(employees) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	leaves, attendance, err := KPIInputs(ctx, store, ids, now)
	if err != nil {
		return nil, err
	}
	return ScoreEmployees(employees, leaves, attendance, now.Location()), nil
}

// KPIInputs loads this year's validated leaves and the trailing attendance
// window of the given employees.
func KPIInputs(ctx context.Context, store analytics.RecordStore, employeeIDs []int64, now time.Time) ([]analytics.LeaveRequest, []analytics.Attendance, error) {
	yearStart, nextYear := YearBounds(now)

	leaves, err := store.FindLeaves(ctx, analytics.Filter{}.
		Where(analytics.FieldEmployeeID, analytics.OpIn, employeeIDs).
		Where(analytics.FieldState, analytics.OpEq, analytics.LeaveStateValidate).
		Where(analytics.FieldRequestDateFrom, analytics.OpGte, yearStart).
		Where(analytics.FieldRequestDateFrom, analytics.OpLt, nextYear))
	if err != nil {
		return nil, nil, storeErr("leave requests", err)
	}

	attendance, err := store.FindAttendance(ctx, analytics.Filter{}.
		Where(analytics.FieldEmployeeID, analytics.OpIn, employeeIDs).
		Where(analytics.FieldCheckIn, analytics.OpGte, AttendanceWindowStart(now)).
		Where(analytics.FieldCheckIn, analytics.OpLte, now).
		Where(analytics.FieldWorkedHours, analytics.OpGt, 0.0))
	if err != nil {
		return nil, nil, storeErr("attendance", err)
	}
	return leaves, attendance, nil
}

// OpenContracts loads the open contracts of the department filter.
func OpenContracts(ctx context.Context, store analytics.RecordStore, deptID *int64) ([]analytics.Contract, error) {
	contracts, err := store.FindContracts(ctx, analytics.Filter{}.
		Where(analytics.FieldState, analytics.OpEq, analytics.ContractStateOpen).
		InDepartment(deptID))
	if err != nil {
		return nil, storeErr("contracts", err)
	}
	return contracts, nil
}

// AttendanceInRange loads attendance with positive worked hours checked in on
// a day of rng.
func AttendanceInRange(ctx context.Context, store analytics.RecordStore, deptID *int64, rng analytics.DateRange) ([]analytics.Attendance, error) {
	records, err := store.FindAttendance(ctx, analytics.Filter{}.
		Where(analytics.FieldCheckIn, analytics.OpGte, rng.Start).
		Where(analytics.FieldCheckIn, analytics.OpLt, rng.EndExclusive()).
		Where(analytics.FieldWorkedHours, analytics.OpGt, 0.0).
		InDepartment(deptID))
	if err != nil {
		return nil, storeErr("attendance", err)
	}
	return records, nil
}

// ValidatedLeavesInRange loads validated leaves starting on a day of rng.
func ValidatedLeavesInRange(ctx context.Context, store analytics.RecordStore, deptID *int64, rng analytics.DateRange) ([]analytics.LeaveRequest, error) {
	leaves, err := store.FindLeaves(ctx, analytics.Filter{}.
		Where(analytics.FieldState, analytics.OpEq, analytics.LeaveStateValidate).
		Where(analytics.FieldRequestDateFrom, analytics.OpGte, rng.Start).
		Where(analytics.FieldRequestDateFrom, analytics.OpLte, rng.End).
		InDepartment(deptID))
	if err != nil {
		return nil, storeErr("leave requests", err)
	}
	return leaves, nil
}

func storeErr(what string, err error) error {
	if errors.Is(err, analytics.ErrStore) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: loading %s: request timed out: %w", analytics.ErrStore, what, err)
	}
	return fmt.Errorf("%w: loading %s: %w", analytics.ErrStore, what, err)
}
