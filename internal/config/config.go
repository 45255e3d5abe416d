// Package config loads the optional shim.toml tunables from the nvmd home directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// Probe sources.
const (
	SourceCommand = "command"
	SourceNpmrc   = "npmrc"
)

// Defaults applied when shim.toml is missing or leaves a field unset.
const (
	DefaultPackageManager = "npm"
	DefaultTimeout        = 10 * time.Second
	DefaultLogLevel       = "warn"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// ErrInvalidConfig wraps every shim.toml problem other than the file being absent.
var ErrInvalidConfig = errors.New(messages.ConfigInvalid)

// Config is the parsed shim.toml.
type Config struct {
	Probe ProbeConfig `toml:"probe"`
	Log   LogConfig   `toml:"log"`
}

// ProbeConfig controls how the package manager global prefix is discovered.
type ProbeConfig struct {
	PackageManager string    `toml:"package_manager"`
	Timeout        *Duration `toml:"timeout"`
	Source         string    `toml:"source"`
}

// LogConfig controls shim diagnostics.
type LogConfig struct {
	Level string `toml:"level"`
	File  bool   `toml:"file"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses values such as "5s" or "1m30s".
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf(messages.ConfigInvalidDurationFmt, string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when shim.toml is absent.
func Default() Config {
	return Config{
		Probe: ProbeConfig{
			PackageManager: DefaultPackageManager,
			Timeout:        &Duration{Duration: DefaultTimeout},
			Source:         SourceCommand,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// ProbeTimeout returns the configured probe timeout; zero disables the timeout.
func (c Config) ProbeTimeout() time.Duration {
	if c.Probe.Timeout == nil {
		return DefaultTimeout
	}
	return c.Probe.Timeout.Duration
}

// Load reads shim.toml from path with readFile (os.ReadFile when nil).
// A missing file returns Default() and no error. Any other failure returns
// Default() together with an error wrapping ErrInvalidConfig so callers can
// log it and continue.
func Load(path string, readFile func(name string) ([]byte, error)) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if readFile == nil {
		readFile = os.ReadFile
	}
	data, err := readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("%w: %w", ErrInvalidConfig, fmt.Errorf(messages.ConfigReadFailedFmt, path, err))
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes and validates shim.toml content. source is used in error messages.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, fmt.Errorf(messages.ConfigParseFailedFmt, source, err))
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Probe.PackageManager = strings.TrimSpace(c.Probe.PackageManager)
	if c.Probe.PackageManager == "" {
		c.Probe.PackageManager = DefaultPackageManager
	}
	c.Probe.Source = strings.ToLower(strings.TrimSpace(c.Probe.Source))
	if c.Probe.Source == "" {
		c.Probe.Source = SourceCommand
	}
	if c.Probe.Timeout == nil {
		c.Probe.Timeout = &Duration{Duration: DefaultTimeout}
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks field values after defaults are applied.
func (c Config) Validate() error {
	switch c.Probe.Source {
	case SourceCommand, SourceNpmrc:
	default:
		return fmt.Errorf(messages.ConfigInvalidSourceFmt, c.Probe.Source, strings.Join([]string{SourceCommand, SourceNpmrc}, ", "))
	}
	if c.Probe.Timeout != nil && c.Probe.Timeout.Duration < 0 {
		return fmt.Errorf(messages.ConfigNegativeTimeoutFmt, c.Probe.Timeout.Duration)
	}
	for _, level := range validLogLevels {
		if c.Log.Level == level {
			return nil
		}
	}
	return fmt.Errorf(messages.ConfigInvalidLogLevelFmt, c.Log.Level)
}
