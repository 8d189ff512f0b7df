package snapshot

import "context"

// SnapshotRepository - interface for hr_analytics_stats table
type SnapshotRepository interface {
	Create(ctx context.Context, s StatsSnapshot) (StatsSnapshot, error)
	GetByID(ctx context.Context, id string) (StatsSnapshot, error)
	// List returns snapshots newest first
	List(ctx context.Context, limit, offset int) ([]StatsSnapshot, int64, error)
	// UpdateMetrics stores recomputed metrics and bumps updated_at
	UpdateMetrics(ctx context.Context, s StatsSnapshot) error
	ListIDs(ctx context.Context) ([]string, error)
}
