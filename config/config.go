// Package config loads the optional run configuration file (spec.md §6
// CLI surface, SPEC_FULL.md §4.10): a TOML document overriding the
// per-block time limit, the STRING frame cap, and verbosity, following
// the teacher's own config package in shape (a Default, a Load, and a
// Path helper) while swapping its JSON encoding for BurntSushi/toml —
// the original's on-disk format was never part of this domain's contract,
// so there is nothing here to preserve except the loading convention.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the run's configurable defaults.
type Config struct {
	Verbose             bool `toml:"verbose"`
	TimeLimitMs         int  `toml:"time_limit_ms"`
	StringFrameCapBytes int  `toml:"string_frame_cap_bytes"`
	QuietLog            bool `toml:"quiet_log"`
}

// Default returns a config with the harness's built-in defaults.
func Default() Config {
	return Config{
		Verbose:             false,
		TimeLimitMs:         1000,
		StringFrameCapBytes: 16 * 1024 * 1024,
		QuietLog:            false,
	}
}

// TimeLimit returns TimeLimitMs as a time.Duration.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// Path returns ~/.config/proctest/config.toml (or XDG_CONFIG_HOME).
// Returns the empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "proctest", "config.toml")
}

// Load reads path (or, if path is empty, the default Path) and merges it
// over Default. A missing file is not an error: it returns the defaults
// unchanged. A malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
