// Package config loads viewer session configuration from defaults, an
// optional TOML file and ZOOMVIEW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zoomview/internal/viewport"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ZOOMVIEW"

// Config holds the settings fixed for one viewing session.
type Config struct {
	MinScale           float64 `toml:"min_scale" envconfig:"MIN_SCALE"`
	MaxScale           float64 `toml:"max_scale" envconfig:"MAX_SCALE"`
	IntermediateFactor float64 `toml:"intermediate_factor" envconfig:"INTERMEDIATE_FACTOR"`
	AnimationMillis    int     `toml:"animation_ms" envconfig:"ANIMATION_MS"`
	Easing             string  `toml:"easing" envconfig:"EASING"`
	TouchSlop          float64 `toml:"touch_slop" envconfig:"TOUCH_SLOP"`

	// WheelStep is the zoom ratio of one mouse-wheel notch.
	WheelStep float64 `toml:"wheel_step" envconfig:"WHEEL_STEP"`

	// WatchContent reloads the image when its file changes on disk.
	WatchContent bool `toml:"watch_content" envconfig:"WATCH_CONTENT"`

	Debug bool `toml:"debug" envconfig:"DEBUG"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MinScale:           viewport.DefaultMinScale,
		MaxScale:           viewport.DefaultMaxScale,
		IntermediateFactor: viewport.DefaultIntermediateFactor,
		AnimationMillis:    int(viewport.DefaultDuration / time.Millisecond),
		Easing:             "fast-out-slow-in",
		TouchSlop:          viewport.DefaultTouchSlop,
		WheelStep:          1.25,
		WatchContent:       true,
	}
}

// Load builds the configuration. path may be empty, in which case
// $ZOOMVIEW_CONFIG is consulted; a missing file named by either is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "zoomview", "config.toml")
}

// Find returns the file Load should read when no path is given on the
// command line: $ZOOMVIEW_CONFIG, else DefaultPath if it exists, else "".
func Find() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	if p := DefaultPath(); fileExists(p) {
		return p
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Save validates c and writes it to path as TOML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the scale invariants and animation settings.
func (c *Config) Validate() error {
	var errs []error
	if c.MinScale <= 0 {
		errs = append(errs, fmt.Errorf("min_scale must be positive, got %g", c.MinScale))
	}
	if c.MaxScale < c.MinScale {
		errs = append(errs, fmt.Errorf("max_scale %g is below min_scale %g", c.MaxScale, c.MinScale))
	}
	if c.IntermediateFactor < 1 {
		errs = append(errs, fmt.Errorf("intermediate_factor must be at least 1, got %g", c.IntermediateFactor))
	}
	if c.AnimationMillis < 0 {
		errs = append(errs, fmt.Errorf("animation_ms must not be negative, got %d", c.AnimationMillis))
	}
	if c.TouchSlop < 0 {
		errs = append(errs, fmt.Errorf("touch_slop must not be negative, got %g", c.TouchSlop))
	}
	if c.WheelStep <= 1 {
		errs = append(errs, fmt.Errorf("wheel_step must be greater than 1, got %g", c.WheelStep))
	}
	if _, err := viewport.EasingByName(c.Easing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// AnimationDuration returns the animated transition length.
func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationMillis) * time.Millisecond
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() []viewport.Option {
	easing, err := viewport.EasingByName(c.Easing)
	if err != nil {
		easing = viewport.FastOutSlowIn
	}
	return []viewport.Option{
		viewport.WithLimits(c.MinScale, c.MaxScale),
		viewport.WithIntermediateFactor(c.IntermediateFactor),
		viewport.WithDuration(c.AnimationDuration()),
		viewport.WithEasing(easing),
		viewport.WithTouchSlop(c.TouchSlop),
	}
}
