// Package config loads optional session configuration from .vestige.yaml.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/vestigehq/vestige/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory
// and the user's home directory, in that order.
const FileName = ".vestige.yaml"

// Defaults.
const (
	DefaultMaxEntries     = 20
	DefaultTTL            = 2 * time.Hour
	DefaultDebounceWindow = 100 * time.Millisecond
	DefaultVolatilityBin  = "vol"
)

// Config carries the construction-time settings for a session. It is never
// persisted back; all cache state is in-memory and process-scoped.
type Config struct {
	MaxEntriesPerCache int
	TTL                time.Duration
	DebounceWindow     time.Duration
	VolatilityBinary   string
	VolatilityArgs     []string
	LogJSON            bool
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		MaxEntriesPerCache: DefaultMaxEntries,
		TTL:                DefaultTTL,
		DebounceWindow:     DefaultDebounceWindow,
		VolatilityBinary:   DefaultVolatilityBin,
	}
}

// Load reads the configuration for a session started in cwd. A missing
// file is not an error; unset fields fall back to defaults.
func Load(cwd string) (Config, error) {
	path, ok := findFile(cwd)
	if !ok {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Join(domain.ErrConfigReadFailed, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, errors.Join(domain.ErrConfigParseFailed, err)
	}

	cfg := Default()
	if f.Cache.MaxEntries > 0 {
		cfg.MaxEntriesPerCache = f.Cache.MaxEntries
	}
	if f.Cache.TTL > 0 {
		cfg.TTL = f.Cache.TTL.Std()
	}
	if f.Cache.DebounceWindow > 0 {
		cfg.DebounceWindow = f.Cache.DebounceWindow.Std()
	}
	if f.Volatility.Binary != "" {
		cfg.VolatilityBinary = f.Volatility.Binary
	}
	cfg.VolatilityArgs = f.Volatility.ExtraArgs
	cfg.LogJSON = f.Log.JSON
	return cfg, nil
}

// findFile looks for the config file in cwd, then in the home directory.
func findFile(cwd string) (string, bool) {
	candidate := filepath.Join(cwd, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, true
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
