package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
)

// SnapshotRepository joins department names from records, like the
// hr_analytics_stats query joins departments.
type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]snapshot.StatsSnapshot
	records   *RecordStore
	now       func() time.Time
}

func NewSnapshotRepository(records *RecordStore, now func() time.Time) *SnapshotRepository {
	if now == nil {
		now = time.Now
	}
	return &SnapshotRepository{
		snapshots: make(map[string]snapshot.StatsSnapshot),
		records:   records,
		now:       now,
	}
}

func (r *SnapshotRepository) withDepartment(s snapshot.StatsSnapshot) snapshot.StatsSnapshot {
	s.DepartmentName = r.records.DepartmentName(s.DepartmentID)
	return s
}

var _ snapshot.SnapshotRepository = (*SnapshotRepository)(nil)

func (r *SnapshotRepository) Create(ctx context.Context, s snapshot.StatsSnapshot) (snapshot.StatsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s.CreatedAt, s.UpdatedAt = now, now
	r.snapshots[s.ID] = s
	return r.withDepartment(s), nil
}

func (r *SnapshotRepository) GetByID(ctx context.Context, id string) (snapshot.StatsSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.snapshots[id]
	if !ok {
		return snapshot.StatsSnapshot{}, snapshot.ErrSnapshotNotFound
	}
	return r.withDepartment(s), nil
}

func (r *SnapshotRepository) List(ctx context.Context, limit, offset int) ([]snapshot.StatsSnapshot, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]snapshot.StatsSnapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		all = append(all, r.withDepartment(s))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []snapshot.StatsSnapshot{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *SnapshotRepository) UpdateMetrics(ctx context.Context, s snapshot.StatsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.snapshots[s.ID]
	if !ok {
		return snapshot.ErrSnapshotNotFound
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = r.now()
	r.snapshots[s.ID] = s
	return nil
}

func (r *SnapshotRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.snapshots))
	for id := range r.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
