package config

import (
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "2h" or "100ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return zerr.Wrap(err, "invalid duration")
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// file is the on-disk YAML schema of .vestige.yaml.
type file struct {
	Cache struct {
		MaxEntries     int      `yaml:"max_entries"`
		TTL            Duration `yaml:"ttl"`
		DebounceWindow Duration `yaml:"debounce_window"`
	} `yaml:"cache"`
	Volatility struct {
		Binary    string   `yaml:"binary"`
		ExtraArgs []string `yaml:"extra_args"`
	} `yaml:"volatility"`
	Log struct {
		JSON bool `yaml:"json"`
	} `yaml:"log"`
}
