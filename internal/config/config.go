// Package config loads scoreboard settings from an optional YAML file and
// SCOREBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/scoreboard/internal/engine"
)

const (
	ProviderESPN    = "espn"
	ProviderFixture = "fixture"
)

type Config struct {
	TeamsFile      string        `yaml:"teams_file"`
	UTCOffset      int           `yaml:"utc_offset"`
	RotateInterval time.Duration `yaml:"rotate_interval"`
	LiveInterval   time.Duration `yaml:"live_interval"`
	LivePolls      int           `yaml:"live_polls"`

	Provider        string        `yaml:"provider"`
	ESPNBaseURL     string        `yaml:"espn_base_url"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	ProviderRetries int           `yaml:"provider_retries"`
	ProviderRate    float64       `yaml:"provider_rate"`

	Framebuffer string `yaml:"framebuffer"`
	Console     bool   `yaml:"console"`
	FramePNG    string `yaml:"frame_png"`

	ListenAddr string        `yaml:"listen"`
	DevMode    bool          `yaml:"dev"`
	PanelURL   string        `yaml:"panel_url"`
	Splash     time.Duration `yaml:"splash"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the device defaults.
func Default() Config {
	return Config{
		TeamsFile:       "/var/lib/scoreboard/teams.json",
		UTCOffset:       -5,
		RotateInterval:  engine.DefaultRotateInterval,
		LiveInterval:    engine.DefaultLiveInterval,
		LivePolls:       engine.DefaultLivePolls,
		Provider:        ProviderESPN,
		HTTPTimeout:     10 * time.Second,
		ProviderRetries: 3,
		ProviderRate:    2,
		Framebuffer:     "/dev/fb0",
		Console:         true,
		ListenAddr:      ":80",
		Splash:          10 * time.Second,
		LogLevel:        "info",
	}
}

// Load starts from base, applies the YAML file at path when path is set,
// then the environment. The result is validated.
func Load(base Config, path string) (Config, error) {
	cfg := base
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.RotateInterval <= 0 {
		errs = append(errs, errors.New("rotate_interval must be positive"))
	}
	if c.LiveInterval <= 0 {
		errs = append(errs, errors.New("live_interval must be positive"))
	}
	if c.LivePolls <= 0 {
		errs = append(errs, errors.New("live_polls must be positive"))
	}
	if c.UTCOffset < -12 || c.UTCOffset > 14 {
		errs = append(errs, fmt.Errorf("utc_offset %d out of range", c.UTCOffset))
	}
	switch strings.ToLower(c.Provider) {
	case ProviderESPN, ProviderFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http_timeout must be positive"))
	}
	if c.ProviderRate < 0 {
		errs = append(errs, errors.New("provider_rate must not be negative"))
	}
	if c.Framebuffer == "" && c.FramePNG == "" {
		errs = append(errs, errors.New("no display output: set framebuffer or frame_png"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Scheduler returns the engine timing settings.
func (c Config) Scheduler() engine.Config {
	return engine.Config{
		RotateInterval: c.RotateInterval,
		LiveInterval:   c.LiveInterval,
		LivePolls:      c.LivePolls,
		UTCOffset:      c.UTCOffset,
	}
}
