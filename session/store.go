// Package session holds the single source of truth for the kiosk journey:
// the active screen, the accumulating customer-data record, and the
// observers that mirror both into native history and analytics.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/screen"
)

// DefaultTransitionWindow is how long the transitioning flag stays set after
// a navigation. Purely presentational.
const DefaultTransitionWindow = 300 * time.Millisecond

// State describes where the journey currently is.
type State struct {
	Current       screen.ID
	SubRoute      string
	HistoryIndex  int
	Transitioning bool
}

// Cause says why an event fired. The history synchronizer pushes only on
// Navigate and Reset; applying a pop must never push again.
type Cause int

const (
	CauseNavigate Cause = iota
	CauseData
	CausePop
	CauseReset
	CauseTransition
)

func (c Cause) String() string {
	switch c {
	case CauseNavigate:
		return "navigate"
	case CauseData:
		return "data"
	case CausePop:
		return "pop"
	case CauseReset:
		return "reset"
	case CauseTransition:
		return "transition"
	}
	return "unknown"
}

// Event is delivered synchronously to observers after every mutation. State
// and Data are copies; observers may hold them across turns.
type Event struct {
	Cause     Cause
	State     State
	Data      CustomerData
	Actions   []string
	SessionID string
}

// Observer receives store events. Observers run synchronously on the
// mutating call, in registration order.
type Observer func(Event)

// Store is the session state store and navigation dispatcher.
//
// The host model is a single event loop, but Go timers fire on their own
// goroutines, so every mutation is serialized behind one mutex and every
// timer callback re-reads state at fire time instead of closing over a copy
// captured when the timer was armed.
type Store struct {
	mu        sync.Mutex
	state     State
	data      CustomerData
	actions   []string
	sessionID string
	observers []Observer

	transitionWindow time.Duration
	transitionTimer  *time.Timer
	transitionGen    int

	logger *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithTransitionWindow overrides the transitioning auto-clear delay.
func WithTransitionWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.transitionWindow = d
		}
	}
}

// NewStore creates a store on the default screen with empty customer data.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:            State{Current: screen.Default},
		sessionID:        uuid.NewString(),
		transitionWindow: DefaultTransitionWindow,
		logger:           logging.NewLogger("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe registers an observer. Registration order is delivery order; the
// kiosk shell registers the history synchronizer before the traffic logger
// so pushes land before analytics scheduling.
func (s *Store) Observe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// NavigateTo requests a screen change. Unknown targets log a warning and
// leave state unchanged. A duplicate of the current (screen, subRoute) pair
// merges extra into the customer record but does not advance the history
// index or trigger a push.
func (s *Store) NavigateTo(target screen.ID, subRoute string, extra *Update) {
	if !screen.Known(target) {
		s.logger.WithField("screen", target).Warn("ignoring navigation to unknown screen")
		return
	}

	s.mu.Lock()
	if target == s.state.Current && subRoute == s.state.SubRoute {
		if extra.IsZero() {
			s.mu.Unlock()
			return
		}
		s.data.apply(extra)
		ev := s.eventLocked(CauseData)
		obs := s.observersLocked()
		s.mu.Unlock()
		dispatch(obs, ev)
		return
	}

	s.data.apply(extra)
	s.state.Current = target
	s.state.SubRoute = subRoute
	s.state.HistoryIndex++
	s.state.Transitioning = true
	s.actions = append(s.actions, "navigate:"+string(target))
	s.armTransitionClearLocked()

	ev := s.eventLocked(CauseNavigate)
	obs := s.observersLocked()
	s.mu.Unlock()
	dispatch(obs, ev)
}

// UpdateCustomerData shallow-merges partial into the customer record.
func (s *Store) UpdateCustomerData(partial *Update) {
	if partial.IsZero() {
		return
	}
	s.mu.Lock()
	s.data.apply(partial)
	ev := s.eventLocked(CauseData)
	obs := s.observersLocked()
	s.mu.Unlock()
	dispatch(obs, ev)
}

// ResetJourney clears the customer record and returns to the default screen.
// A fresh analytics session starts; the previous one is over.
func (s *Store) ResetJourney() {
	s.mu.Lock()
	s.data = CustomerData{}
	s.actions = nil
	s.state = State{Current: screen.Default}
	s.sessionID = uuid.NewString()
	s.cancelTransitionClearLocked()

	ev := s.eventLocked(CauseReset)
	obs := s.observersLocked()
	s.mu.Unlock()
	dispatch(obs, ev)
}

// ApplyHistoryEntry applies a native back/forward event carrying a
// previously pushed entry. The history index jumps to whatever the entry
// recorded; no push is requested.
func (s *Store) ApplyHistoryEntry(target screen.ID, subRoute string, index int) {
	if !screen.Known(target) {
		s.logger.WithField("screen", target).Warn("ignoring history entry for unknown screen")
		return
	}
	s.mu.Lock()
	s.state.Current = target
	s.state.SubRoute = subRoute
	s.state.HistoryIndex = index
	s.state.Transitioning = false
	s.actions = append(s.actions, "history:"+string(target))

	ev := s.eventLocked(CausePop)
	obs := s.observersLocked()
	s.mu.Unlock()
	dispatch(obs, ev)
}

// ApplyHistoryBaseline applies a native back/forward event that carried no
// entry: the visitor navigated past the journey's first entry. The screen
// returns to the default and filter-only fields are dropped so a stale
// shortcut filter cannot re-apply on a later forward navigation.
func (s *Store) ApplyHistoryBaseline() {
	s.mu.Lock()
	s.state.Current = screen.Default
	s.state.SubRoute = ""
	s.state.HistoryIndex = 0
	s.state.Transitioning = false
	s.data.clearFilters()
	s.actions = append(s.actions, "history:"+string(screen.Default))

	ev := s.eventLocked(CausePop)
	obs := s.observersLocked()
	s.mu.Unlock()
	dispatch(obs, ev)
}

// State returns a copy of the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentScreen returns the active screen identifier.
func (s *Store) CurrentScreen() screen.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Current
}

// Data returns a copy of the customer record.
func (s *Store) Data() CustomerData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

// SessionID returns the identifier of the current analytics session.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Actions returns the action breadcrumb accumulated since the last reset.
func (s *Store) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func (s *Store) eventLocked(cause Cause) Event {
	return Event{
		Cause:     cause,
		State:     s.state,
		Data:      s.data.clone(),
		Actions:   append([]string(nil), s.actions...),
		SessionID: s.sessionID,
	}
}

func (s *Store) observersLocked() []Observer {
	return append([]Observer(nil), s.observers...)
}

// armTransitionClearLocked restarts the transition-clear timer, cancelling
// any prior pending firing. The generation counter keeps a superseded timer
// that already fired from clearing a newer transition.
func (s *Store) armTransitionClearLocked() {
	s.transitionGen++
	gen := s.transitionGen
	if s.transitionTimer != nil {
		s.transitionTimer.Stop()
	}
	s.transitionTimer = time.AfterFunc(s.transitionWindow, func() {
		s.clearTransition(gen)
	})
}

func (s *Store) cancelTransitionClearLocked() {
	s.transitionGen++
	if s.transitionTimer != nil {
		s.transitionTimer.Stop()
		s.transitionTimer = nil
	}
}

func (s *Store) clearTransition(gen int) {
	s.mu.Lock()
	if gen != s.transitionGen || !s.state.Transitioning {
		s.mu.Unlock()
		return
	}
	s.state.Transitioning = false
	ev := s.eventLocked(CauseTransition)
	obs := s.observersLocked()
	s.mu.Unlock()
	dispatch(obs, ev)
}

// dispatch runs outside the store lock so observers may call back into the
// store without deadlocking.
func dispatch(observers []Observer, ev Event) {
	for _, fn := range observers {
		fn(ev)
	}
}
