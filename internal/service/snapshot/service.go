package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	analyticsService "github.com/cmlabs-hris/hris-analytics-go/internal/service/analytics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type SnapshotServiceImpl struct {
	repo  snapshot.SnapshotRepository
	store analytics.RecordStore
	now   func() time.Time
}

func NewSnapshotService(repo snapshot.SnapshotRepository, store analytics.RecordStore, now func() time.Time) snapshot.SnapshotService {
	if now == nil {
		now = time.Now
	}
	return &SnapshotServiceImpl{repo: repo, store: store, now: now}
}

// Create implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) Create(ctx context.Context, req snapshot.CreateSnapshotRequest) (*snapshot.SnapshotResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := s.now()

	var deptParam analytics.DepartmentParam
	if req.DepartmentID != nil {
		deptParam = analytics.DepartmentParam(strconv.FormatInt(*req.DepartmentID, 10))
	}
	deptID, err := analyticsService.ValidateDepartment(ctx, s.store, deptParam)
	if err != nil {
		return nil, err
	}
	rng, err := analyticsService.ValidateDateRange(req.DateFrom, req.DateTo, now)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("HR Analytics - %s", now.Format(time.DateOnly))
	if req.Name != nil {
		name = *req.Name
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate snapshot id: %w", err)
	}

	stats := snapshot.StatsSnapshot{
		ID:           id.String(),
		Name:         name,
		DepartmentID: deptID,
		DateFrom:     rng.Start,
		DateTo:       rng.End,
	}
	if err := s.compute(ctx, &stats, now); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats snapshot: %w", err)
	}

	logging.LogOperation(logging.FromContext(ctx), "stats snapshot created",
		slog.String("snapshot_id", created.ID),
		slog.Int64("total_employees", created.TotalEmployees))

	resp := created.ToResponse()
	return &resp, nil
}

// GetByID implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) GetByID(ctx context.Context, id string) (*snapshot.SnapshotResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := found.ToResponse()
	return &resp, nil
}

// List implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) List(ctx context.Context, filter snapshot.ListSnapshotFilter) (*snapshot.ListSnapshotResponse, error) {
	offset := (filter.Page - 1) * filter.Limit

	items, total, err := s.repo.List(ctx, filter.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats snapshots: %w", err)
	}

	resp := &snapshot.ListSnapshotResponse{
		Snapshots:  make([]snapshot.SnapshotResponse, 0, len(items)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
	for _, item := range items {
		resp.Snapshots = append(resp.Snapshots, item.ToResponse())
	}
	return resp, nil
}

// Refresh implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) Refresh(ctx context.Context, id string) (*snapshot.SnapshotResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.compute(ctx, &found, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMetrics(ctx, found); err != nil {
		return nil, fmt.Errorf("failed to update stats snapshot %s: %w", id, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

// RefreshAll implements snapshot.SnapshotService.
func (s *SnapshotServiceImpl) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stats snapshots: %w", err)
	}

	var (
		refreshed int
		errs      []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.Refresh(ctx, id); err != nil {
			// A deleted snapshot is not a failure of the batch
			if errors.Is(err, snapshot.ErrSnapshotNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("snapshot %s: %w", id, err))
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}

// compute fills every metric of stats from the record store.
func (s *SnapshotServiceImpl) compute(ctx context.Context, stats *snapshot.StatsSnapshot, now time.Time) error {
	loc := now.Location()
	rng := analytics.DateRange{
		Start: time.Date(stats.DateFrom.Year(), stats.DateFrom.Month(), stats.DateFrom.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(stats.DateTo.Year(), stats.DateTo.Month(), stats.DateTo.Day(), 0, 0, 0, 0, loc),
	}
	deptID := stats.DepartmentID

	var (
		active, inactive int64
		contracts        []analytics.Contract
		totalLeaves      int64
		avgDaily, hours  float64
		scores           []float64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		active, inactive, err = analyticsService.Headcount(gCtx, s.store, deptID)
		return err
	})

	g.Go(func() error {
		var err error
		contracts, err = analyticsService.OpenContracts(gCtx, s.store, deptID)
		return err
	})

	g.Go(func() error {
		leaves, err := analyticsService.ValidatedLeavesInRange(gCtx, s.store, deptID, rng)
		if err != nil {
			return err
		}
		totalLeaves = int64(len(leaves))
		return nil
	})

	g.Go(func() error {
		records, err := analyticsService.AttendanceInRange(gCtx, s.store, deptID, rng)
		if err != nil {
			return err
		}
		avgDaily, hours = analyticsService.AverageDailyHours(records, loc)
		return nil
	})

	g.Go(func() error {
		var err error
		scores, err = analyticsService.KPIScores(gCtx, s.store, deptID, now)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	stats.TotalEmployees = active
	stats.TotalInactiveEmployees = inactive
	stats.TurnoverRate = analyticsService.TurnoverRate(active, inactive)
	stats.AvgSalary = decimal.NewFromFloat(analyticsService.AverageSalary(contracts))
	stats.TotalSalaryCost = analyticsService.TotalSalary(contracts)
	stats.TotalLeaves = totalLeaves
	stats.AvgLeavesPerEmployee = 0
	if active > 0 {
		stats.AvgLeavesPerEmployee = decimal.NewFromInt(totalLeaves).
			Div(decimal.NewFromInt(active)).Round(2).InexactFloat64()
	}
	stats.AvgDailyHours = avgDaily
	stats.TotalWorkedHours = hours
	stats.AvgKPIScore = analyticsService.KPIAverage(scores)
	return nil
}
