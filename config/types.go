package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	kerrors "github.com/motorlane/kiosk/errors"
	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/screen"
)

// Duration wraps time.Duration so kiosk.yml can say "3m" or "5s". It
// decodes from both YAML and TOML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(raw))
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the TOML
// decoder and mapstructure).
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root of kiosk.yml.
type Config struct {
	Version   string          `yaml:"version,omitempty" toml:"version,omitempty"`
	Journey   JourneyConfig   `yaml:"journey" toml:"journey"`
	Analytics AnalyticsConfig `yaml:"analytics" toml:"analytics"`
	Assistant AssistantConfig `yaml:"assistant" toml:"assistant"`
	Inventory InventoryConfig `yaml:"inventory" toml:"inventory"`
	Logging   logging.Config  `yaml:"logging" toml:"logging"`

	// Extensions holds tool-specific sections the core config does not
	// model. Decode one with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

// JourneyConfig controls the navigation controller's timers and defaults.
type JourneyConfig struct {
	// IdleTimeout is the quiet period before an unattended session resets.
	IdleTimeout Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	// DebounceWindow is the traffic logger's coalescing window.
	DebounceWindow Duration `yaml:"debounce_window" toml:"debounce_window"`
	// TransitionWindow is how long the transitioning flag stays set.
	TransitionWindow Duration `yaml:"transition_window" toml:"transition_window"`
	// DefaultScreen overrides the screen the kiosk boots onto.
	DefaultScreen string `yaml:"default_screen,omitempty" toml:"default_screen,omitempty"`
}

// AnalyticsConfig selects and configures traffic collectors.
type AnalyticsConfig struct {
	// Enabled turns traffic logging on. Local sqlite storage is always
	// kept when enabled; the websocket stream is added when Endpoint is
	// set.
	Enabled bool `yaml:"enabled" toml:"enabled"`
	// SQLitePath is the local traffic database. Defaults to
	// .kiosk/traffic.db next to the config file.
	SQLitePath string `yaml:"sqlite_path,omitempty" toml:"sqlite_path,omitempty"`
	// Endpoint is the ws:// or wss:// analytics endpoint, if any.
	Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
}

// AssistantConfig configures the aiChat backend.
type AssistantConfig struct {
	// Enabled switches the aiChat screen between the live backend and the
	// offline scripted assistant.
	Enabled bool `yaml:"enabled" toml:"enabled"`
	// BaseURL points at an OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
	// Model names the chat model.
	Model string `yaml:"model,omitempty" toml:"model,omitempty"`
	// APIKeyEnv names the environment variable holding the key. The key
	// itself never lives in kiosk.yml.
	APIKeyEnv string `yaml:"api_key_env,omitempty" toml:"api_key_env,omitempty"`
}

// InventoryConfig points at the vehicle catalog.
type InventoryConfig struct {
	// CatalogPath is the exported dealership catalog. Empty uses the
	// embedded demo catalog.
	CatalogPath string `yaml:"catalog_path,omitempty" toml:"catalog_path,omitempty"`
}

// Default returns the configuration used when no kiosk.yml exists.
func Default() *Config {
	return &Config{
		Journey: JourneyConfig{
			IdleTimeout:      Duration(3 * time.Minute),
			DebounceWindow:   Duration(5 * time.Second),
			TransitionWindow: Duration(300 * time.Millisecond),
		},
		Analytics: AnalyticsConfig{
			Enabled: true,
		},
	}
}

// applyDefaults fills zero timer values after decoding a partial file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Journey.IdleTimeout <= 0 {
		c.Journey.IdleTimeout = def.Journey.IdleTimeout
	}
	if c.Journey.DebounceWindow <= 0 {
		c.Journey.DebounceWindow = def.Journey.DebounceWindow
	}
	if c.Journey.TransitionWindow <= 0 {
		c.Journey.TransitionWindow = def.Journey.TransitionWindow
	}
}

// Validate checks the configuration for values the controller cannot run
// with.
func (c *Config) Validate() error {
	if c.Journey.IdleTimeout.Std() < time.Second {
		return kerrors.ConfigInvalid("journey.idle_timeout must be at least 1s")
	}
	if c.Journey.DebounceWindow.Std() < 100*time.Millisecond {
		return kerrors.ConfigInvalid("journey.debounce_window must be at least 100ms")
	}
	if c.Journey.DefaultScreen != "" && !screen.Known(screen.ID(c.Journey.DefaultScreen)) {
		return kerrors.ConfigInvalid(fmt.Sprintf("journey.default_screen %q is not a known screen", c.Journey.DefaultScreen))
	}
	if c.Analytics.Endpoint != "" &&
		!hasPrefixAny(c.Analytics.Endpoint, "ws://", "wss://") {
		return kerrors.ConfigInvalid("analytics.endpoint must be a ws:// or wss:// URL")
	}
	return nil
}

// UnmarshalExtension decodes a named extension section into out.
func (c *Config) UnmarshalExtension(name string, out interface{}) error {
	raw, ok := c.Extensions[name]
	if !ok {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func hasPrefixAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
