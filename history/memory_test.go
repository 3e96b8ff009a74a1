package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

func TestMemoryPushAndBack(t *testing.T) {
	m := NewMemory()
	var got []*Entry
	m.Subscribe(func(e *Entry) { got = append(got, e) })

	require.NoError(t, m.Replace(Entry{Screen: screen.Welcome, Index: 0}, "", "#welcome"))
	require.NoError(t, m.Push(Entry{Screen: screen.Inventory, Index: 1}, "", "#inventory"))

	cur, frag, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, screen.Inventory, cur.Screen)
	assert.Equal(t, "#inventory", frag)

	assert.True(t, m.Back())
	require.Len(t, got, 1)
	require.NotNil(t, got[0])
	assert.Equal(t, screen.Welcome, got[0].Screen)

	// Backing past the baseline delivers nil, exactly once.
	assert.True(t, m.Back())
	require.Len(t, got, 2)
	assert.Nil(t, got[1])
	assert.False(t, m.Back())
}

func TestMemoryForward(t *testing.T) {
	m := NewMemory()
	var got []*Entry
	m.Subscribe(func(e *Entry) { got = append(got, e) })

	require.NoError(t, m.Replace(Entry{Screen: screen.Welcome, Index: 0}, "", ""))
	require.NoError(t, m.Push(Entry{Screen: screen.Inventory, Index: 1}, "", ""))
	m.Back()

	assert.True(t, m.Forward())
	require.Len(t, got, 2)
	require.NotNil(t, got[1])
	assert.Equal(t, screen.Inventory, got[1].Screen)

	assert.False(t, m.Forward(), "already at the newest entry")
}

func TestMemoryPushTruncatesForwardEntries(t *testing.T) {
	m := NewMemory()
	m.Subscribe(func(*Entry) {})

	require.NoError(t, m.Replace(Entry{Screen: screen.Welcome, Index: 0}, "", ""))
	require.NoError(t, m.Push(Entry{Screen: screen.Inventory, Index: 1}, "", ""))
	require.NoError(t, m.Push(Entry{Screen: screen.VehicleDetail, Index: 2}, "", ""))
	m.Back()

	require.NoError(t, m.Push(Entry{Screen: screen.AIChat, Index: 2}, "", ""))

	assert.Equal(t, 3, m.Len())
	cur, _, _ := m.Current()
	assert.Equal(t, screen.AIChat, cur.Screen)
	assert.False(t, m.Forward())
}

// End-to-end: store, synchronizer and memory history together, exercising
// the back/forward journey a visitor actually takes.
func TestStoreWithMemoryHistory(t *testing.T) {
	store := session.NewStore()
	m := NewMemory()
	Attach(store, m)

	store.NavigateTo(screen.Inventory, "", &session.Update{BodyStyle: "SUV"})
	store.NavigateTo(screen.VehicleDetail, "A1042", nil)

	cur, frag, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, screen.VehicleDetail, cur.Screen)
	assert.Equal(t, "#vehicleDetail", frag)

	// Back to inventory: rendered screen follows, no extra push.
	before := m.Len()
	m.Back()
	assert.Equal(t, screen.Inventory, store.CurrentScreen())
	assert.Equal(t, before, m.Len())

	// Back to welcome, then past the baseline: filters drop.
	m.Back()
	m.Back()
	assert.Equal(t, screen.Welcome, store.CurrentScreen())
	assert.Empty(t, store.Data().BodyStyle)

	// Forward navigation to inventory again starts clean.
	store.NavigateTo(screen.Inventory, "", nil)
	assert.Empty(t, store.Data().BodyStyle)
}
