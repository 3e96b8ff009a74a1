package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

// recordingNative captures push/replace calls and lets tests deliver
// navigated events by hand.
type recordingNative struct {
	pushes    []Entry
	replaces  []Entry
	fragments []string
	handler   Handler
	pushErr   error
}

func (n *recordingNative) Push(entry Entry, label, fragment string) error {
	if n.pushErr != nil {
		return n.pushErr
	}
	n.pushes = append(n.pushes, entry)
	n.fragments = append(n.fragments, fragment)
	return nil
}

func (n *recordingNative) Replace(entry Entry, label, fragment string) error {
	n.replaces = append(n.replaces, entry)
	return nil
}

func (n *recordingNative) Subscribe(h Handler) { n.handler = h }

func TestAttachReplacesBaseline(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}

	Attach(store, native)

	require.Len(t, native.replaces, 1)
	assert.Equal(t, screen.Welcome, native.replaces[0].Screen)
	assert.Equal(t, 0, native.replaces[0].Index)
	assert.Empty(t, native.pushes, "baseline must replace, not push")
}

func TestNavigationPushesEntryWithFragment(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}
	Attach(store, native)

	store.NavigateTo(screen.Inventory, "", nil)

	require.Len(t, native.pushes, 1)
	assert.Equal(t, screen.Inventory, native.pushes[0].Screen)
	assert.Equal(t, 1, native.pushes[0].Index)
	assert.Equal(t, "/journey/inventory", native.pushes[0].FullRoute)
	assert.Equal(t, "#inventory", native.fragments[0])
}

func TestDuplicateNavigationPushesOnce(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}
	Attach(store, native)

	store.NavigateTo(screen.Inventory, "", nil)
	store.NavigateTo(screen.Inventory, "", nil)

	assert.Len(t, native.pushes, 1)
}

func TestBackEventAppliesEntryWithoutPush(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}
	Attach(store, native)

	store.NavigateTo(screen.Inventory, "", nil)
	store.NavigateTo(screen.VehicleDetail, "", nil)
	require.Len(t, native.pushes, 2)

	native.handler(&Entry{Screen: screen.Inventory, Index: 1})

	st := store.State()
	assert.Equal(t, screen.Inventory, st.Current)
	assert.Equal(t, 1, st.HistoryIndex)
	assert.Len(t, native.pushes, 2, "applying a pop must not push")
}

func TestNilEventForcesWelcomeAndClearsFilters(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}
	Attach(store, native)

	store.NavigateTo(screen.Inventory, "", &session.Update{BodyStyle: "SUV"})
	native.handler(nil)

	assert.Equal(t, screen.Welcome, store.CurrentScreen())
	assert.Empty(t, store.Data().BodyStyle)
	assert.Len(t, native.pushes, 1, "baseline pop must not push")
}

func TestResetPushesFreshDefaultEntry(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}
	Attach(store, native)

	store.NavigateTo(screen.Inventory, "", nil)
	store.ResetJourney()

	require.Len(t, native.pushes, 2)
	assert.Equal(t, screen.Welcome, native.pushes[1].Screen)
	assert.Equal(t, 0, native.pushes[1].Index)
}

func TestDegradedModeKeepsStoreWorking(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{pushErr: errors.New("history api gone")}
	sync := Attach(store, native)

	store.NavigateTo(screen.Inventory, "", nil)

	assert.True(t, sync.Degraded())
	assert.Equal(t, screen.Inventory, store.CurrentScreen(), "in-app navigation must keep functioning")

	store.NavigateTo(screen.Payment, "", nil)
	assert.Equal(t, screen.Payment, store.CurrentScreen())
}

func TestSubRouteRoundTrip(t *testing.T) {
	store := session.NewStore()
	native := &recordingNative{}
	Attach(store, native)

	store.NavigateTo(screen.ModelBudget, "budget", nil)
	require.Len(t, native.pushes, 1)
	assert.Equal(t, "budget", native.pushes[0].SubRoute)
	assert.Equal(t, "/journey/modelBudget/budget", native.pushes[0].FullRoute)

	store.NavigateTo(screen.Payment, "", nil)
	native.handler(&native.pushes[0])

	st := store.State()
	assert.Equal(t, screen.ModelBudget, st.Current)
	assert.Equal(t, "budget", st.SubRoute)
}
