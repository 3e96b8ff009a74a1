package config

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "kiosk.yml", "journey:\n  idle_timeout: 2m\n")

	var mu sync.Mutex
	var reloaded []*Config
	w, err := NewWatcher(path, func(cfg *Config) {
		mu.Lock()
		reloaded = append(reloaded, cfg)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("journey:\n  idle_timeout: 5m\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reloaded) == 1
	}, 5*time.Second, 50*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5*time.Minute, reloaded[0].Journey.IdleTimeout.Std())
}

func TestWatcherKeepsPreviousConfigOnBrokenEdit(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "kiosk.yml", "journey:\n  idle_timeout: 2m\n")

	var mu sync.Mutex
	reloads := 0
	w, err := NewWatcher(path, func(*Config) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("journey: ["), 0o644))

	time.Sleep(1500 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, reloads, "a broken edit must not invoke the reload callback")
}
