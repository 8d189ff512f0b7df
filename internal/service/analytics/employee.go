package analytics

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"golang.org/x/sync/errgroup"
)

// GetEmployeeMetrics implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetEmployeeMetrics(ctx context.Context, employeeID int64) (*analytics.EmployeeMetricsResponse, error) {
	now := s.now()

	// Inactive employees are included so their history stays inspectable
	employees, err := s.store.FindEmployees(ctx, analytics.Filter{}.
		Where(analytics.FieldID, analytics.OpEq, employeeID))
	if err != nil {
		return nil, storeErr("employees", err)
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: id %d", analytics.ErrEmployeeNotFound, employeeID)
	}
	emp := employees[0]

	resp := &analytics.EmployeeMetricsResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if emp.DepartmentID == nil {
			return nil
		}
		active, inactive, err := Headcount(gCtx, s.store, emp.DepartmentID)
		if err != nil {
			return err
		}
		resp.DepartmentTurnoverRate = TurnoverRate(active, inactive)
		return nil
	})

	g.Go(func() error {
		contracts, err := s.store.FindContracts(gCtx, analytics.Filter{}.
			Where(analytics.FieldEmployeeID, analytics.OpEq, emp.ID).
			Where(analytics.FieldState, analytics.OpEq, analytics.ContractStateOpen))
		if err != nil {
			return storeErr("contracts", err)
		}
		resp.CurrentSalary = CurrentSalary(contracts)
		return nil
	})

	g.Go(func() error {
		leaves, attendance, err := KPIInputs(gCtx, s.store, []int64{emp.ID}, now)
		if err != nil {
			return err
		}
		resp.TotalLeavesYTD = CountLeavesByEmployee(leaves)[emp.ID]
		resp.KPIScore = round2(ScoreEmployees([]analytics.Employee{emp}, leaves, attendance, now.Location())[0])
		resp.AvgDailyHours, _ = AverageDailyHours(attendance, now.Location())
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
