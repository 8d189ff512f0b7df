package snapshot

import "context"

type SnapshotService interface {
	Create(ctx context.Context, req CreateSnapshotRequest) (*SnapshotResponse, error)
	GetByID(ctx context.Context, id string) (*SnapshotResponse, error)
	List(ctx context.Context, filter ListSnapshotFilter) (*ListSnapshotResponse, error)
	Refresh(ctx context.Context, id string) (*SnapshotResponse, error)
	// RefreshAll recomputes every snapshot and returns how many were refreshed
	RefreshAll(ctx context.Context) (int, error)
}
