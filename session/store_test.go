package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlane/kiosk/screen"
)

func collectEvents(s *Store) *[]Event {
	events := &[]Event{}
	s.Observe(func(ev Event) {
		*events = append(*events, ev)
	})
	return events
}

func TestNavigateTo(t *testing.T) {
	s := NewStore()
	events := collectEvents(s)

	s.NavigateTo(screen.Inventory, "", nil)

	st := s.State()
	assert.Equal(t, screen.Inventory, st.Current)
	assert.Equal(t, 1, st.HistoryIndex)
	assert.True(t, st.Transitioning)

	require.Len(t, *events, 1)
	assert.Equal(t, CauseNavigate, (*events)[0].Cause)
}

func TestNavigateToUnknownScreenIsNoOp(t *testing.T) {
	s := NewStore()
	events := collectEvents(s)

	s.NavigateTo("vrShowroom", "", nil)

	st := s.State()
	assert.Equal(t, screen.Welcome, st.Current)
	assert.Equal(t, 0, st.HistoryIndex)
	assert.Empty(t, *events)
}

func TestDuplicateNavigationDoesNotAdvanceIndex(t *testing.T) {
	s := NewStore()
	events := collectEvents(s)

	s.NavigateTo(screen.Inventory, "", nil)
	s.NavigateTo(screen.Inventory, "", nil)

	st := s.State()
	assert.Equal(t, 1, st.HistoryIndex)
	// The second call is swallowed entirely: no event, no push request.
	require.Len(t, *events, 1)

	// A duplicate carrying extra data still merges it, as a data event.
	s.NavigateTo(screen.Inventory, "", &Update{BodyStyle: "SUV"})
	st = s.State()
	assert.Equal(t, 1, st.HistoryIndex)
	require.Len(t, *events, 2)
	assert.Equal(t, CauseData, (*events)[1].Cause)
	assert.Equal(t, "SUV", s.Data().BodyStyle)
}

func TestSubRouteChangeIsNotADuplicate(t *testing.T) {
	s := NewStore()

	s.NavigateTo(screen.ModelBudget, "model", nil)
	s.NavigateTo(screen.ModelBudget, "budget", nil)

	st := s.State()
	assert.Equal(t, 2, st.HistoryIndex)
	assert.Equal(t, "budget", st.SubRoute)
}

func TestUpdateCustomerDataMergesShallowly(t *testing.T) {
	s := NewStore()

	s.UpdateCustomerData(&Update{CustomerName: "Dana"})
	s.UpdateCustomerData(&Update{Vehicle: &VehicleChoice{Stock: "A1042", Model: "Compass"}})
	s.UpdateCustomerData(&Update{TradeIn: &TradeInDetails{Make: "Honda", Year: 2017}})

	d := s.Data()
	assert.Equal(t, "Dana", d.CustomerName)
	require.NotNil(t, d.Vehicle)
	assert.Equal(t, "A1042", d.Vehicle.Stock)
	require.NotNil(t, d.TradeIn)
	assert.Equal(t, "Honda", d.TradeIn.Make)
}

func TestConversationAppends(t *testing.T) {
	s := NewStore()

	s.UpdateCustomerData(&Update{Conversation: []ChatTurn{{Role: "user", Content: "hi"}}})
	s.UpdateCustomerData(&Update{Conversation: []ChatTurn{{Role: "assistant", Content: "hello"}}})

	d := s.Data()
	require.Len(t, d.Conversation, 2)
	assert.Equal(t, "assistant", d.Conversation[1].Role)
}

func TestResetJourney(t *testing.T) {
	s := NewStore()
	firstSession := s.SessionID()

	s.NavigateTo(screen.Inventory, "", &Update{CustomerName: "Dana"})
	s.NavigateTo(screen.VehicleDetail, "A1042", nil)
	s.ResetJourney()

	st := s.State()
	assert.Equal(t, screen.Welcome, st.Current)
	assert.Equal(t, 0, st.HistoryIndex)
	assert.False(t, st.Transitioning)
	assert.Equal(t, CustomerData{}, s.Data())
	assert.Empty(t, s.Actions())
	assert.NotEqual(t, firstSession, s.SessionID(), "reset should rotate the session id")
}

func TestApplyHistoryEntryDoesNotPush(t *testing.T) {
	s := NewStore()
	var causes []Cause
	s.Observe(func(ev Event) { causes = append(causes, ev.Cause) })

	s.NavigateTo(screen.Inventory, "", nil)
	s.NavigateTo(screen.VehicleDetail, "", nil)
	s.ApplyHistoryEntry(screen.Inventory, "", 1)

	st := s.State()
	assert.Equal(t, screen.Inventory, st.Current)
	assert.Equal(t, 1, st.HistoryIndex)
	assert.Equal(t, []Cause{CauseNavigate, CauseNavigate, CausePop}, causes)
}

func TestApplyHistoryBaselineClearsFilterOnlyFields(t *testing.T) {
	s := NewStore()

	s.NavigateTo(screen.Inventory, "", &Update{BodyStyle: "SUV", CustomerName: "Dana"})
	s.ApplyHistoryBaseline()

	st := s.State()
	assert.Equal(t, screen.Welcome, st.Current)
	assert.Equal(t, 0, st.HistoryIndex)

	d := s.Data()
	assert.Empty(t, d.BodyStyle, "filter-only field should be cleared")
	assert.Equal(t, "Dana", d.CustomerName, "durable fields survive the baseline pop")
}

func TestTransitioningClears(t *testing.T) {
	s := NewStore(WithTransitionWindow(10 * time.Millisecond))

	s.NavigateTo(screen.Inventory, "", nil)
	assert.True(t, s.State().Transitioning)

	assert.Eventually(t, func() bool {
		return !s.State().Transitioning
	}, time.Second, 5*time.Millisecond)
}

func TestTransitionTimerIsSuperseded(t *testing.T) {
	s := NewStore(WithTransitionWindow(30 * time.Millisecond))

	s.NavigateTo(screen.Inventory, "", nil)
	time.Sleep(15 * time.Millisecond)
	s.NavigateTo(screen.VehicleDetail, "", nil)
	time.Sleep(20 * time.Millisecond)

	// The first timer's deadline has passed, but it was superseded by the
	// second navigation; the second window is still open.
	assert.True(t, s.State().Transitioning)

	assert.Eventually(t, func() bool {
		return !s.State().Transitioning
	}, time.Second, 5*time.Millisecond)
}

func TestObserverOrdering(t *testing.T) {
	s := NewStore()
	var order []string
	s.Observe(func(Event) { order = append(order, "history") })
	s.Observe(func(Event) { order = append(order, "traffic") })

	s.NavigateTo(screen.Inventory, "", nil)

	assert.Equal(t, []string{"history", "traffic"}, order)
}

func TestMostRecentNavigationWins(t *testing.T) {
	s := NewStore()

	targets := []screen.ID{
		screen.Inventory, screen.GuidedQuiz, screen.AIChat,
		screen.TradeIn, screen.Payment, screen.Handoff,
	}
	for _, target := range targets {
		s.NavigateTo(target, "", nil)
	}

	assert.Equal(t, screen.Handoff, s.CurrentScreen())
	assert.Equal(t, len(targets), s.State().HistoryIndex)
}
