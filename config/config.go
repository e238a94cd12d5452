// Package config loads postboard's settings: defaults, then an optional
// YAML or TOML file, then POSTBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/golobby/cast"
	"gopkg.in/yaml.v3"

	"github.com/pthm/postboard/posts"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "POSTBOARD"

// Backends.
const (
	BackendMemory = "memory"
	BackendRemote = "remote"
)

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config is the full application configuration.
type Config struct {
	Addr string `yaml:"addr" toml:"addr" env:"ADDR"`
	// Key signs component props. Empty generates one per process.
	Key     string `yaml:"key" toml:"key" env:"KEY"`
	Backend string `yaml:"backend" toml:"backend" env:"BACKEND"`

	API API `yaml:"api" toml:"api" env:"API"`
	UI  UI  `yaml:"ui" toml:"ui" env:"UI"`
	Log Log `yaml:"log" toml:"log" env:"LOG"`

	// Seed is loaded into the memory backend at startup.
	Seed []posts.Post `yaml:"seed" toml:"seed"`
}

// API configures the posts backend.
type API struct {
	// URL of the remote posts API; required for the remote backend.
	URL     string        `yaml:"url" toml:"url" env:"URL"`
	Key     string        `yaml:"key" toml:"key" env:"KEY"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout" env:"TIMEOUT"`
	// Serve mounts the memory backend's JSON API under /api.
	Serve bool `yaml:"serve" toml:"serve" env:"SERVE"`
}

// UI configures component behavior.
type UI struct {
	Poll                  time.Duration `yaml:"poll" toml:"poll" env:"POLL"`
	GuardDuplicateSubmits bool          `yaml:"guard_duplicate_submits" toml:"guard_duplicate_submits" env:"GUARD_DUPLICATE_SUBMITS"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level" toml:"level" env:"LEVEL"`
	Format string `yaml:"format" toml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:    ":8080",
		Backend: BackendMemory,
		API: API{
			Timeout: 10 * time.Second,
			Serve:   true,
		},
		UI: UI{
			Poll: time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(reflect.ValueOf(cfg).Elem(), EnvPrefix); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "addr is required")
	}
	switch c.Backend {
	case BackendMemory:
	case BackendRemote:
		if c.API.URL == "" {
			problems = append(problems, "api.url is required for the remote backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("backend %q must be %q or %q", c.Backend, BackendMemory, BackendRemote))
	}
	if c.API.Timeout <= 0 {
		problems = append(problems, "api.timeout must be positive")
	}
	if c.UI.Poll <= 0 {
		problems = append(problems, "ui.poll must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not text or json", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnv walks v's env-tagged fields, reading PREFIX_TAG variables.
// Nested structs extend the prefix with their own tag.
func applyEnv(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		name := prefix + "_" + strings.ToUpper(tag)

		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			if err := applyEnv(fv, name); err != nil {
				return err
			}
			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	converted, err := cast.FromType(raw, field.Type())
	if err != nil {
		return fmt.Errorf("cannot convert value to type %v: %w", field.Type(), err)
	}
	field.Set(reflect.ValueOf(converted).Convert(field.Type()))
	return nil
}
