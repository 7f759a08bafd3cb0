package usage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/motivation-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	rec := model.UsageRecord{AudioMinutes: 15.5, AnalysisCount: 2, LastUpdated: time.Now().UTC()}
	require.NoError(t, store.Put(ctx, "alice", "2026-09", rec))

	got, err := store.Get(ctx, "alice", "2026-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 15.5, got.AudioMinutes, 0.001)
	assert.Equal(t, 2, got.AnalysisCount)
}

func TestSQLiteGetAbsentReturnsNil(t *testing.T) {
	store := newTestSQLite(t)

	got, err := store.Get(context.Background(), "nobody", "2026-09")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	require.NoError(t, store.Put(ctx, "alice", "2026-09", model.UsageRecord{AnalysisCount: 1}))
	require.NoError(t, store.Put(ctx, "alice", "2026-09", model.UsageRecord{AnalysisCount: 5, AudioMinutes: 3}))

	got, err := store.Get(ctx, "alice", "2026-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.AnalysisCount)
	assert.InDelta(t, 3, got.AudioMinutes, 0.001)
}

func TestSQLitePutFillsZeroTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	require.NoError(t, store.Put(ctx, "alice", "2026-09", model.UsageRecord{AnalysisCount: 1}))

	got, err := store.Get(ctx, "alice", "2026-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.WithinDuration(t, time.Now(), got.LastUpdated, time.Minute)
}

func TestSQLiteAllFiltersByMonth(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	require.NoError(t, store.Put(ctx, "alice", "2026-09", model.UsageRecord{AnalysisCount: 2}))
	require.NoError(t, store.Put(ctx, "bob", "2026-09", model.UsageRecord{AudioMinutes: 12}))
	require.NoError(t, store.Put(ctx, "alice", "2026-08", model.UsageRecord{AnalysisCount: 8}))

	all, err := store.All(ctx, "2026-09")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all["alice"].AnalysisCount)
	assert.InDelta(t, 12, all["bob"].AudioMinutes, 0.001)
}

func TestSQLiteBacksLedger(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newTestSQLite(t))

	require.NoError(t, l.RecordAudioUsage(ctx, "alice", 25))
	require.NoError(t, l.RecordAnalysisUsage(ctx, "alice"))

	stats, err := l.GetUsageStats(ctx, "alice")
	require.NoError(t, err)
	assert.InDelta(t, 25, stats.AudioMinutesUsed, 0.001)
	assert.Equal(t, 1, stats.AnalysesUsed)
}
