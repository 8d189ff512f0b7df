package analytics

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	"golang.org/x/sync/errgroup"
)

type AnalyticsServiceImpl struct {
	store analytics.RecordStore
	now   func() time.Time
}

// NewAnalyticsService builds the service. now is the clock every "today" and
// "current year" is derived from; pass time.Now outside of tests.
func NewAnalyticsService(store analytics.RecordStore, now func() time.Time) analytics.AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsServiceImpl{store: store, now: now}
}

// GetAnalytics implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetAnalytics(ctx context.Context, req analytics.AnalyticsRequest) *analytics.AnalyticsResponse {
	resp, err := s.Compute(ctx, req)
	if err != nil {
		logging.LogError(logging.FromContext(ctx), "hr analytics request failed", err,
			slog.String("department_id", string(req.DepartmentID)),
			slog.String("start_date", req.StartDate),
			slog.String("end_date", req.EndDate))
		return ErrorResponse(err)
	}
	return resp
}

// Compute implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Compute(ctx context.Context, req analytics.AnalyticsRequest) (*analytics.AnalyticsResponse, error) {
	now := s.now()

	deptID, err := ValidateDepartment(ctx, s.store, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	rng, err := ValidateDateRange(req.StartDate, req.EndDate, now)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, deptID, rng, now)
}

// Export implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Export(ctx context.Context, req analytics.AnalyticsRequest, w io.Writer) error {
	now := s.now()

	deptID, err := ValidateDepartment(ctx, s.store, req.DepartmentID)
	if err != nil {
		return err
	}
	rng, err := ValidateDateRange(req.StartDate, req.EndDate, now)
	if err != nil {
		return err
	}

	resp, err := s.compute(ctx, deptID, rng, now)
	if err != nil {
		return err
	}

	meta := ExportMeta{Range: rng, GeneratedAt: now}
	if deptID != nil {
		departments, err := s.store.FindDepartments(ctx)
		if err != nil {
			return storeErr("departments", err)
		}
		for _, d := range departments {
			if d.ID == *deptID {
				meta.Department = d.Name
				break
			}
		}
	}
	return WriteXLSX(w, resp, meta)
}

func (s *AnalyticsServiceImpl) compute(ctx context.Context, deptID *int64, rng analytics.DateRange, now time.Time) (*analytics.AnalyticsResponse, error) {
	logger := logging.FromContext(ctx)

	logging.LogOperation(logger, "hr analytics request",
		slog.Any("department_id", deptID),
		slog.String("range", rng.String()))

	var (
		metrics CoreMetrics
		trends  Trends
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Headcount and turnover over the filtered population
	g.Go(func() error {
		active, inactive, err := Headcount(gCtx, s.store, deptID)
		if err != nil {
			return err
		}
		metrics.TotalEmployees = active
		metrics.TurnoverRate = TurnoverRate(active, inactive)
		return nil
	})

	// 2. Salary: average and per-department totals from open contracts
	g.Go(func() error {
		contracts, err := OpenContracts(gCtx, s.store, deptID)
		if err != nil {
			return err
		}
		metrics.AvgSalary = AverageSalary(contracts)
		trends.Salary = SalaryDistribution(contracts)
		return nil
	})

	// 3. KPI scores of active employees
	g.Go(func() error {
		scores, err := KPIScores(gCtx, s.store, deptID, now)
		if err != nil {
			return err
		}
		metrics.KPIAverage = KPIAverage(scores)
		metrics.KPIDistribution = KPIDistribution(scores)
		return nil
	})

	// 4. Daily attendance trend
	g.Go(func() error {
		records, err := AttendanceInRange(gCtx, s.store, deptID, rng)
		if err != nil {
			return err
		}
		trends.Attendance = AttendanceTrend(records, rng)
		return nil
	})

	// 5. Monthly leave trend
	g.Go(func() error {
		leaves, err := ValidatedLeavesInRange(gCtx, s.store, deptID, rng)
		if err != nil {
			return err
		}
		trends.Leave = LeaveTrend(leaves, rng)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := Assemble(metrics, trends)

	logging.LogOperation(logger, "hr analytics response",
		slog.Int64("total_employees", resp.TotalEmployees),
		slog.Int("kpi_buckets", len(resp.KPIDistribution)),
		slog.Int("attendance_points", len(resp.AttendanceTrends)),
		slog.Int("salary_groups", len(resp.SalaryDistribution)),
		slog.Int("leave_points", len(resp.LeaveTrends)))

	return resp, nil
}

// ListDepartments implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) ListDepartments(ctx context.Context) ([]analytics.DepartmentResponse, error) {
	departments, err := s.store.FindDepartments(ctx)
	if err != nil {
		return nil, storeErr("departments", err)
	}

	out := make([]analytics.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, analytics.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return out, nil
}
