package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	kerrors "github.com/motorlane/kiosk/errors"
)

// configNames are searched in order in each directory.
var configNames = []string{"kiosk.yml", "kiosk.yaml", "kiosk.toml"}

// FindConfigFile walks up from dir looking for a kiosk config file.
func FindConfigFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", kerrors.ConfigNotFound(filepath.Join(dir, configNames[0]))
		}
		dir = parent
	}
}

// Load reads and validates a config file, deciding the format by
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ConfigNotFound(path)
		}
		return nil, kerrors.Wrap(err, kerrors.ErrCodeConfigInvalid, "read config file")
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, kerrors.Wrap(err, kerrors.ErrCodeConfigInvalid, "parse toml config")
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, kerrors.Wrap(err, kerrors.ErrCodeConfigInvalid, "parse yaml config")
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault finds and loads the config starting from the working
// directory. When no file exists the built-in defaults are returned, which
// is the normal state of a freshly imaged kiosk.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := FindConfigFile(cwd)
	if err != nil {
		if kerrors.Is(err, kerrors.ErrCodeConfigNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}
