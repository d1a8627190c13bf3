// Package config loads StudyMind configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (STUDYMIND_TIMER_FOCUS, ...).
const EnvPrefix = "STUDYMIND"

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Timer    TimerConfig    `mapstructure:"timer"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TUIConfig holds terminal UI preferences.
type TUIConfig struct {
	// Theme is used when no preference has been persisted yet.
	Theme string `mapstructure:"theme"`
	// HighContrast swaps the dark palette for the high-contrast one.
	HighContrast bool `mapstructure:"high_contrast"`
}

// TimerConfig holds pomodoro durations.
type TimerConfig struct {
	Focus time.Duration `mapstructure:"focus"`
	Break time.Duration `mapstructure:"break"`
}

// PlannerConfig tunes the analysis animation.
type PlannerConfig struct {
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	Stagger       time.Duration `mapstructure:"stagger"`
	// RandomSeed seeds the progress generator. Zero picks a time-based seed.
	RandomSeed int64 `mapstructure:"random_seed"`
}

// SeedConfig points at an alternative sample data file.
type SeedConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dataDir, "studymind.db")},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "studymind.log"),
		},
		TUI: TUIConfig{Theme: "auto"},
		Timer: TimerConfig{
			Focus: 25 * time.Minute,
			Break: 5 * time.Minute,
		},
		Planner: PlannerConfig{
			FrameInterval: 100 * time.Millisecond,
			Stagger:       500 * time.Millisecond,
		},
	}
}

// Load reads configuration from path (or the default search paths when empty),
// applies STUDYMIND_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range configSearchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Timer.Focus < time.Second {
		return fmt.Errorf("timer.focus must be at least 1s, got %s", c.Timer.Focus)
	}
	if c.Timer.Break < time.Second {
		return fmt.Errorf("timer.break must be at least 1s, got %s", c.Timer.Break)
	}
	if c.Planner.FrameInterval <= 0 {
		return fmt.Errorf("planner.frame_interval must be positive")
	}
	if c.Planner.Stagger < 0 {
		return fmt.Errorf("planner.stagger must not be negative")
	}
	switch strings.ToLower(c.TUI.Theme) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("tui.theme must be auto, light or dark, got %q", c.TUI.Theme)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("tui.theme", cfg.TUI.Theme)
	v.SetDefault("tui.high_contrast", cfg.TUI.HighContrast)
	v.SetDefault("timer.focus", cfg.Timer.Focus)
	v.SetDefault("timer.break", cfg.Timer.Break)
	v.SetDefault("planner.frame_interval", cfg.Planner.FrameInterval)
	v.SetDefault("planner.stagger", cfg.Planner.Stagger)
	v.SetDefault("planner.random_seed", cfg.Planner.RandomSeed)
	v.SetDefault("seed.path", cfg.Seed.Path)
}

func configSearchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "studymind"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "studymind"))
	}
	return append(paths, ".")
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "studymind")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "studymind")
	}
	return ".studymind"
}
