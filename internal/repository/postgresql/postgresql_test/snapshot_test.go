package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(t *testing.T, name string, dept *int64) snapshot.StatsSnapshot {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return snapshot.StatsSnapshot{
		ID:             id.String(),
		Name:           name,
		DepartmentID:   dept,
		DateFrom:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DateTo:         time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalEmployees: 2,
		TurnoverRate:   33.33,
		AvgSalary:      decimal.RequireFromString("2000.00"),
	}
}

func TestSnapshotRepository_CreateGetUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	seedRecords(t, ctx, setup)

	repo := postgresql.NewSnapshotRepository(setup.DB)
	dept := int64(1)

	created, err := repo.Create(ctx, newSnapshot(t, "June", &dept))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "June", got.Name)
	require.NotNil(t, got.DepartmentName)
	assert.Equal(t, "Engineering", *got.DepartmentName)
	assert.True(t, got.AvgSalary.Equal(decimal.NewFromInt(2000)))

	got.TotalLeaves = 7
	require.NoError(t, repo.UpdateMetrics(ctx, got))

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.TotalLeaves)
	assert.False(t, updated.UpdatedAt.Before(got.UpdatedAt))
}

func TestSnapshotRepository_NotFound(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewSnapshotRepository(setup.DB)

	missing := uuid.NewString()

	_, err := repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, snapshot.ErrSnapshotNotFound)

	err = repo.UpdateMetrics(ctx, snapshot.StatsSnapshot{ID: missing})
	assert.ErrorIs(t, err, snapshot.ErrSnapshotNotFound)
}

func TestSnapshotRepository_ListPaginates(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewSnapshotRepository(setup.DB)

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, newSnapshot(t, name, nil))
		require.NoError(t, err)
	}

	page, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, _, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}
