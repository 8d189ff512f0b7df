package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
)

type SnapshotJobs struct {
	snapshotService snapshot.SnapshotService
	interval        time.Duration
	logger          *slog.Logger
}

func NewSnapshotJobs(snapshotService snapshot.SnapshotService, interval time.Duration, logger *slog.Logger) *SnapshotJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotJobs{
		snapshotService: snapshotService,
		interval:        interval,
		logger:          logger,
	}
}

func (j *SnapshotJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_stats_snapshots", j.interval, j.RefreshSnapshots)
}

// RefreshSnapshots recomputes every stored stats snapshot.
func (j *SnapshotJobs) RefreshSnapshots(ctx context.Context) error {
	refreshed, err := j.snapshotService.RefreshAll(ctx)
	j.logger.Info("Cron: stats snapshots refreshed", "count", refreshed)
	return err
}
