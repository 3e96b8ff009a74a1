package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/motorlane/kiosk/logging"
)

// Watcher watches a kiosk config file and invokes a callback with the
// re-loaded configuration after changes settle. Kiosks run unattended for
// weeks; staff adjust timings by editing the file, not by restarting.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onReload func(*Config)
	debounce time.Duration

	mu         sync.Mutex
	lastChange time.Time
	closed     bool

	logger *logrus.Entry
}

// NewWatcher starts watching the config file's directory (editors replace
// files rather than writing in place, so watching the file itself misses
// renames). onReload runs only after a successful re-load; a broken edit is
// logged and the previous configuration stays in effect.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     path,
		onReload: onReload,
		debounce: 500 * time.Millisecond,
		logger:   logging.NewLogger("config-watcher"),
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("config watch error")
		}
	}
}

// scheduleReload coalesces a burst of file events into one reload: editors
// fire several writes per save.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	now := time.Now()
	w.lastChange = now
	w.mu.Unlock()

	time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stale := w.closed || !w.lastChange.Equal(now)
		w.mu.Unlock()
		if stale {
			return
		}
		w.reload()
	})
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).Warn("config reload failed, keeping previous configuration")
		return
	}
	w.logger.Info("configuration reloaded")
	logging.Apply(cfg.Logging)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
