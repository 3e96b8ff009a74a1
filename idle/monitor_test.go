package idle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/motorlane/kiosk/screen"
)

// fakeSession is a minimal Session with a controllable current screen.
type fakeSession struct {
	mu      sync.Mutex
	current screen.ID
	resets  int
	panics  bool
}

func (f *fakeSession) CurrentScreen() screen.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSession) ResetJourney() {
	f.mu.Lock()
	f.resets++
	f.current = screen.Welcome
	shouldPanic := f.panics
	f.mu.Unlock()
	if shouldPanic {
		panic("screen blew up during reset")
	}
}

func (f *fakeSession) setScreen(id screen.ID) {
	f.mu.Lock()
	f.current = id
	f.mu.Unlock()
}

func (f *fakeSession) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func TestExpiryResetsExactlyOnce(t *testing.T) {
	sess := &fakeSession{current: screen.Inventory}
	m := NewMonitor(sess, WithThreshold(30*time.Millisecond))
	defer m.Stop()

	m.Touch()

	assert.Eventually(t, func() bool { return sess.resetCount() == 1 }, time.Second, 5*time.Millisecond)

	// The fresh session sits on the exempt welcome screen; no further reset.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, sess.resetCount())
}

func TestActivityCancelsExpiry(t *testing.T) {
	sess := &fakeSession{current: screen.Inventory}
	m := NewMonitor(sess, WithThreshold(60*time.Millisecond))
	defer m.Stop()

	m.Touch()
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		m.Touch()
	}

	assert.Equal(t, 0, sess.resetCount(), "each signal must restart the quiet window")

	assert.Eventually(t, func() bool { return sess.resetCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestExemptScreensNeverArm(t *testing.T) {
	for _, id := range []screen.ID{screen.Welcome, screen.TrafficLog, screen.SalesDashboard} {
		sess := &fakeSession{current: id}
		m := NewMonitor(sess, WithThreshold(20*time.Millisecond))

		m.Touch()
		time.Sleep(60 * time.Millisecond)

		assert.Equal(t, 0, sess.resetCount(), "screen %s must not self-reset", id)
		m.Stop()
	}
}

func TestMovingToExemptScreenCancelsPendingExpiry(t *testing.T) {
	sess := &fakeSession{current: screen.Inventory}
	m := NewMonitor(sess, WithThreshold(40*time.Millisecond))
	defer m.Stop()

	m.Touch()
	time.Sleep(15 * time.Millisecond)
	sess.setScreen(screen.TrafficLog)
	m.Touch()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, sess.resetCount())
}

func TestStopDisarms(t *testing.T) {
	sess := &fakeSession{current: screen.Inventory}
	m := NewMonitor(sess, WithThreshold(20*time.Millisecond))

	m.Touch()
	m.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, sess.resetCount())
}

func TestResetPanicIsContained(t *testing.T) {
	sess := &fakeSession{current: screen.Inventory, panics: true}
	m := NewMonitor(sess, WithThreshold(20*time.Millisecond))
	defer m.Stop()

	m.Touch()

	assert.Eventually(t, func() bool { return sess.resetCount() == 1 }, time.Second, 5*time.Millisecond)
	// Reaching this assertion at all means the panic did not escape the
	// timer goroutine.
}
