package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "kiosk.yml", `
journey:
  idle_timeout: 2m
  debounce_window: 3s
  default_screen: inventory
analytics:
  enabled: true
  endpoint: wss://analytics.example.com/ingest
assistant:
  enabled: true
  model: gpt-4o-mini
  api_key_env: SHOWROOM_OPENAI_KEY
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Journey.IdleTimeout.Std())
	assert.Equal(t, 3*time.Second, cfg.Journey.DebounceWindow.Std())
	// Unset timers fall back to defaults.
	assert.Equal(t, 300*time.Millisecond, cfg.Journey.TransitionWindow.Std())
	assert.Equal(t, "inventory", cfg.Journey.DefaultScreen)
	assert.Equal(t, "wss://analytics.example.com/ingest", cfg.Analytics.Endpoint)
	assert.Equal(t, "SHOWROOM_OPENAI_KEY", cfg.Assistant.APIKeyEnv)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "kiosk.toml", `
[journey]
idle_timeout = "90s"
debounce_window = "2s"

[analytics]
enabled = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Journey.IdleTimeout.Std())
	assert.False(t, cfg.Analytics.Enabled)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown default screen", "journey:\n  default_screen: vrShowroom\n"},
		{"idle timeout too small", "journey:\n  idle_timeout: 500ms\n"},
		{"debounce too small", "journey:\n  debounce_window: 10ms\n"},
		{"non-websocket endpoint", "analytics:\n  endpoint: https://example.com\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "kiosk.yml", tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "kiosk.yml", "journey: {}\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "kiosk.yml"), found)
}

func TestFindConfigFileMissing(t *testing.T) {
	_, err := FindConfigFile(t.TempDir())
	assert.Error(t, err)
}

func TestUnmarshalExtension(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "kiosk.yml", `
extensions:
  signage:
    banner: "Summer Sale"
    rotate_every: 30s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	var signage struct {
		Banner      string   `yaml:"banner"`
		RotateEvery Duration `yaml:"rotate_every"`
	}
	require.NoError(t, cfg.UnmarshalExtension("signage", &signage))
	assert.Equal(t, "Summer Sale", signage.Banner)
	assert.Equal(t, 30*time.Second, signage.RotateEvery.Std())

	// Unknown sections decode to nothing, not an error.
	var unknown struct{}
	assert.NoError(t, cfg.UnmarshalExtension("nope", &unknown))
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
