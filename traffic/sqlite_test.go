package traffic

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "traffic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := Snapshot{
		SessionID:    "sess-1",
		Screen:       screen.VehicleDetail,
		SubRoute:     "A1042",
		Actions:      []string{"navigate:inventory", "navigate:vehicleDetail"},
		CustomerName: "Dana",
		Data: session.CustomerData{
			CustomerName: "Dana",
			Vehicle:      &session.VehicleChoice{Stock: "A1042", Model: "Compass"},
		},
		RecordedAt: time.Now(),
	}
	require.NoError(t, store.LogSession(ctx, snap))

	recs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "sess-1", recs[0].SessionID)
	assert.Equal(t, screen.VehicleDetail, recs[0].Screen)
	assert.Equal(t, []string{"navigate:inventory", "navigate:vehicleDetail"}, recs[0].Actions)
	assert.Equal(t, "Dana", recs[0].CustomerName)
	assert.Contains(t, recs[0].Data, `"stock":"A1042"`)
}

func TestSQLiteStoreUpsertsPerSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Snapshot{SessionID: "sess-1", Screen: screen.Inventory, RecordedAt: time.Now()}
	require.NoError(t, store.LogSession(ctx, first))

	second := first
	second.Screen = screen.Payment
	second.Actions = []string{"navigate:inventory", "navigate:payment"}
	second.RecordedAt = time.Now().Add(time.Second)
	require.NoError(t, store.LogSession(ctx, second))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "one row per session, updated in place")

	recs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, screen.Payment, recs[0].Screen)
}

func TestSQLiteStoreRecentOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.LogSession(ctx, Snapshot{
			SessionID:  id,
			Screen:     screen.Welcome,
			RecordedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].SessionID)
	assert.Equal(t, "b", recs[1].SessionID)
}

func TestSQLiteStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("   ")
	assert.Error(t, err)
}
