package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the altiumate configuration.
type Config struct {
	// Version is the default Altium Designer version hint used when no
	// --altium-version flag is given. Empty means "any".
	Version string `toml:"version"`

	// TimeoutSeconds bounds how long a run waits for Altium Designer to
	// report a result. Zero means the built-in default.
	TimeoutSeconds float64 `toml:"timeout_seconds"`

	// DataDir is where the script payload, the script project and the
	// status artifact live. Defaults to ~/.altiumate.
	DataDir string `toml:"data_dir"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "altiumate", "config.toml"), nil
}

// Load reads config from ~/.config/altiumate/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
// Environment variables override file settings.
func Load() (Config, error) {
	cfg := Default()

	path, err := configPath()
	if err == nil {
		data, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
			}
		case !errors.Is(readErr, os.ErrNotExist):
			return Default(), fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv applies ALTIUMATE_* environment overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ALTIUMATE_VERSION"); v != "" {
		cfg.Version = v
	}
	if v := os.Getenv("ALTIUMATE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ALTIUMATE_TIMEOUT"); v != "" {
		var secs float64
		if _, err := fmt.Sscanf(v, "%f", &secs); err == nil {
			cfg.TimeoutSeconds = secs
		}
	}
}

// ResolveDataDir returns the effective data directory, creating it if
// needed. Falls back to ~/.altiumate when unconfigured.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".altiumate")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// ExeOverride reads the one-line executable path override from the
// .altium_exe side file in dataDir. Returns "" when the file is absent.
func ExeOverride(dataDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, ".altium_exe"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read executable override: %w", err)
	}
	path := strings.TrimSpace(string(data))
	if path == "" {
		return "", errors.New("executable override file is empty")
	}
	return path, nil
}
