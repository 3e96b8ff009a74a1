// Package idle resets an unattended kiosk session back to the home screen
// after a fixed quiet period.
package idle

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/screen"
)

// DefaultThreshold is the quiet period after which an unattended session
// resets.
const DefaultThreshold = 3 * time.Minute

// Session is the slice of the session store the monitor needs.
type Session interface {
	CurrentScreen() screen.ID
	ResetJourney()
}

// Monitor owns a single timer, re-armed by every qualifying activity
// signal. Expiry on a non-exempt screen calls ResetJourney exactly once and
// re-arms. Only the most recent signal time matters; there is no
// accumulation of missed resets.
type Monitor struct {
	mu           sync.Mutex
	session      Session
	threshold    time.Duration
	timer        *time.Timer
	gen          int
	lastActivity time.Time
	stopped      bool
	logger       *logrus.Entry
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithThreshold overrides the quiet-period threshold.
func WithThreshold(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.threshold = d
		}
	}
}

// NewMonitor creates a monitor watching the given session. Call Touch on
// every qualifying activity signal; the monitor starts disarmed until the
// first Touch (the kiosk boots onto the exempt welcome screen anyway).
func NewMonitor(session Session, opts ...Option) *Monitor {
	m := &Monitor{
		session:   session,
		threshold: DefaultThreshold,
		logger:    logging.NewLogger("idle"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Touch records a qualifying activity signal: any pointer/key/touch
// interaction, or any store mutation. It cancels the pending expiry and
// re-arms the timer, unless the current screen is exempt.
func (m *Monitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.lastActivity = time.Now()
	m.armLocked()
}

// Stop disarms the monitor permanently.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// armLocked restarts the expiry timer, cancelling the prior pending firing.
// Expiry is never armed while the current screen is exempt: staff-facing
// and idle home screens must not self-reset.
func (m *Monitor) armLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if exempt(m.session.CurrentScreen()) {
		return
	}
	gen := m.gen
	m.timer = time.AfterFunc(m.threshold, func() {
		m.onExpire(gen)
	})
}

// onExpire fires on the timer goroutine. It re-reads current state rather
// than trusting anything captured when the timer was armed: a superseded
// timer, a fresh activity signal, or a move to an exempt screen each cancel
// the reset.
func (m *Monitor) onExpire(gen int) {
	m.mu.Lock()
	if m.stopped || gen != m.gen {
		m.mu.Unlock()
		return
	}
	if time.Since(m.lastActivity) < m.threshold {
		m.armLocked()
		m.mu.Unlock()
		return
	}
	if exempt(m.session.CurrentScreen()) {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.logger.Info("idle threshold reached, resetting journey")
	m.reset()

	// Re-arm for the fresh session. The store is back on the welcome
	// screen, which is exempt, so this disarms until the next navigation.
	m.Touch()
}

// reset contains a ResetJourney panic so a broken screen cannot take the
// event loop down with it.
func (m *Monitor) reset() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("resetJourney panicked during idle reset")
		}
	}()
	m.session.ResetJourney()
}

// exempt screens never arm an expiry.
func exempt(id screen.ID) bool {
	return id == screen.Welcome || id.IsAdmin()
}
