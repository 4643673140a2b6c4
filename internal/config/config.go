// Package config loads settings for the hookbus command.
//
// Settings come from an optional TOML file and are then overridden by
// environment variables:
//
//	[logging]
//	level = "debug"   # debug, info, warn, error
//	format = "json"   # text, json
//
//	[events]
//	register = ["order.created", "order.shipped"]
//	scripts = ["hooks/audit.lua"]
//
// Environment overrides: HOOKBUS_LOG_LEVEL, HOOKBUS_LOG_FORMAT,
// HOOKBUS_EVENTS (comma-separated) and HOOKBUS_SCRIPTS (comma-separated).
// Relative script paths in a file are resolved against the file's directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "HOOKBUS_"

// Config holds the command configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Events  EventsConfig  `toml:"events"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// EventsConfig lists events to register and scripts to load at startup.
type EventsConfig struct {
	Register []string `toml:"register"`
	Scripts  []string `toml:"scripts"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path, applies environment overrides and
// validates the result. An empty path or a missing file yields the
// defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing file, not an error
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := cfg.decode(path, bytes.NewReader(data)); err != nil {
				return nil, err
			}
			cfg.resolveScripts(filepath.Dir(path))
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader parses TOML from r on top of the defaults. It does not
// apply environment overrides.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode("<reader>", r); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(source string, r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func (c *Config) resolveScripts(dir string) {
	for i, p := range c.Events.Scripts {
		if !filepath.IsAbs(p) {
			c.Events.Scripts[i] = filepath.Join(dir, p)
		}
	}
}

// ApplyEnv overrides settings from environment variables looked up with
// lookup, typically os.LookupEnv. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = normalize(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		c.Logging.Format = normalize(v)
	}
	if v, ok := lookup(EnvPrefix + "EVENTS"); ok && v != "" {
		c.Events.Register = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "SCRIPTS"); ok && v != "" {
		c.Events.Scripts = splitList(v)
	}
}

// OverrideLogLevel sets the log level from a command-line value, using the
// same normalization as HOOKBUS_LOG_LEVEL. An empty level is ignored.
func (c *Config) OverrideLogLevel(level string) error {
	if level == "" {
		return nil
	}
	c.Logging.Level = normalize(level)
	return c.Validate()
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks that every setting has a supported value.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Allowed: logLevels}
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return &ValidationError{Path: "logging.format", Value: c.Logging.Format, Allowed: logFormats}
	}
	for _, name := range c.Events.Register {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "events.register", Value: name, Allowed: []string{"non-empty event name"}}
		}
	}
	return nil
}
