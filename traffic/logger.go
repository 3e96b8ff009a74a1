package traffic

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/session"
)

// DefaultDebounceWindow is the quiet period after the last observed change
// before the pending snapshot is emitted.
const DefaultDebounceWindow = 5 * time.Second

// Collector receives traffic session logs. Calls are fire-and-forget from
// the logger's point of view; errors are contained here and the failed
// snapshot becomes eligible for retry on the next window's emission.
type Collector interface {
	LogSession(ctx context.Context, snap Snapshot) error
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(ctx context.Context, snap Snapshot) error

// LogSession calls f.
func (f CollectorFunc) LogSession(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// Logger observes every (screen, customer data) change, coalesces bursts
// into at most one emission per debounce window, and suppresses logging
// entirely while an admin screen is active.
type Logger struct {
	mu      sync.Mutex
	coll    Collector
	window  time.Duration
	pending *Snapshot
	retry   *Snapshot
	timer   *time.Timer
	gen     int
	closed  bool
	emitWG  sync.WaitGroup
	logger  *logrus.Entry
}

// Option configures a Logger.
type Option func(*Logger)

// WithDebounceWindow overrides the debounce window.
func WithDebounceWindow(d time.Duration) Option {
	return func(l *Logger) {
		if d > 0 {
			l.window = d
		}
	}
}

// NewLogger creates a traffic logger emitting to coll and registers it as a
// store observer.
func NewLogger(store *session.Store, coll Collector, opts ...Option) *Logger {
	l := &Logger{
		coll:   coll,
		window: DefaultDebounceWindow,
		logger: logging.NewLogger("traffic"),
	}
	for _, opt := range opts {
		opt(l)
	}
	store.Observe(l.Observe)
	return l
}

// Observe handles one store event. Each observed change replaces the
// pending snapshot (never queues a second one) and restarts the window.
// Entering an admin screen cancels any pending window outright, including
// one scheduled before the admin screen came up.
func (l *Logger) Observe(ev session.Event) {
	if ev.Cause == session.CauseTransition {
		// The transitioning flag is presentational; it is not a
		// (screen, customer data) change.
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	if ev.State.Current.IsAdmin() {
		l.pending = nil
		l.cancelTimerLocked()
		return
	}

	snap := snapshotOf(ev)
	l.pending = &snap
	l.restartTimerLocked()
}

// Flush emits any pending snapshot immediately and waits for in-flight
// deliveries. Used at shutdown so the tail of a session is not lost.
func (l *Logger) Flush() {
	l.mu.Lock()
	l.cancelTimerLocked()
	snap := l.pending
	l.pending = nil
	l.mu.Unlock()

	if snap != nil {
		l.emit(*snap)
	}
	l.emitWG.Wait()
}

// Close cancels any pending window and stops future emissions.
func (l *Logger) Close() {
	l.mu.Lock()
	l.closed = true
	l.cancelTimerLocked()
	l.pending = nil
	l.mu.Unlock()
	l.emitWG.Wait()
}

func (l *Logger) restartTimerLocked() {
	l.gen++
	gen := l.gen
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.window, func() {
		l.onWindowEnd(gen)
	})
}

func (l *Logger) cancelTimerLocked() {
	l.gen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// onWindowEnd fires on the timer goroutine. It re-reads the pending
// snapshot at fire time; a superseded timer finds its generation stale and
// does nothing.
func (l *Logger) onWindowEnd(gen int) {
	l.mu.Lock()
	if l.closed || gen != l.gen || l.pending == nil {
		l.mu.Unlock()
		return
	}
	snap := *l.pending
	l.pending = nil
	l.mu.Unlock()

	l.emitAsync(snap)
}

// emitAsync delivers off the event path so a slow collector can never block
// navigation.
func (l *Logger) emitAsync(snap Snapshot) {
	l.emitWG.Add(1)
	go func() {
		defer l.emitWG.Done()
		l.emit(snap)
	}()
}

// emit delivers a snapshot, first retrying the previously failed one if
// any. Failures never propagate; the snapshot is parked for the next
// emission instead.
func (l *Logger) emit(snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.WithField("panic", r).Error("collector panicked")
		}
	}()

	l.mu.Lock()
	retry := l.retry
	l.retry = nil
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if retry != nil {
		if err := l.coll.LogSession(ctx, *retry); err != nil {
			l.logger.WithError(err).Debug("retried snapshot failed again, dropping")
		}
	}

	if err := l.coll.LogSession(ctx, snap); err != nil {
		l.logger.WithError(err).Warn("traffic log delivery failed, will retry with next window")
		l.mu.Lock()
		if !l.closed {
			l.retry = &snap
		}
		l.mu.Unlock()
	}
}

// Multi fans a snapshot out to several collectors. Every collector is
// attempted; the first error is returned so the logger's retry logic still
// engages.
type Multi []Collector

// LogSession implements Collector.
func (m Multi) LogSession(ctx context.Context, snap Snapshot) error {
	var first error
	for _, c := range m {
		if err := c.LogSession(ctx, snap); err != nil && first == nil {
			first = err
		}
	}
	return first
}
