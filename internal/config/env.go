package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvTeamsFile       = "SCOREBOARD_TEAMS_FILE"
	EnvUTCOffset       = "SCOREBOARD_UTC_OFFSET"
	EnvRotateInterval  = "SCOREBOARD_ROTATE_INTERVAL"
	EnvLiveInterval    = "SCOREBOARD_LIVE_INTERVAL"
	EnvLivePolls       = "SCOREBOARD_LIVE_POLLS"
	EnvProvider        = "SCOREBOARD_PROVIDER"
	EnvESPNBaseURL     = "SCOREBOARD_ESPN_BASE_URL"
	EnvHTTPTimeout     = "SCOREBOARD_HTTP_TIMEOUT"
	EnvProviderRetries = "SCOREBOARD_PROVIDER_RETRIES"
	EnvProviderRate    = "SCOREBOARD_PROVIDER_RATE"
	EnvFramebuffer     = "SCOREBOARD_FRAMEBUFFER"
	EnvConsole         = "SCOREBOARD_CONSOLE"
	EnvFramePNG        = "SCOREBOARD_FRAME_PNG"
	EnvListenAddr      = "SCOREBOARD_LISTEN"
	EnvDevMode         = "SCOREBOARD_DEV"
	EnvPanelURL        = "SCOREBOARD_PANEL_URL"
	EnvSplash          = "SCOREBOARD_SPLASH"
	EnvLogLevel        = "SCOREBOARD_LOG_LEVEL"
)

// applyEnv overrides cfg with every variable that is set. Malformed values
// are reported together.
func applyEnv(cfg *Config) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	stringEnv(EnvTeamsFile, &cfg.TeamsFile)
	stringEnv(EnvProvider, &cfg.Provider)
	stringEnv(EnvESPNBaseURL, &cfg.ESPNBaseURL)
	stringEnv(EnvFramebuffer, &cfg.Framebuffer)
	stringEnv(EnvFramePNG, &cfg.FramePNG)
	stringEnv(EnvListenAddr, &cfg.ListenAddr)
	stringEnv(EnvPanelURL, &cfg.PanelURL)
	stringEnv(EnvLogLevel, &cfg.LogLevel)

	collect(intEnv(EnvUTCOffset, &cfg.UTCOffset))
	collect(intEnv(EnvLivePolls, &cfg.LivePolls))
	collect(intEnv(EnvProviderRetries, &cfg.ProviderRetries))
	collect(durationEnv(EnvRotateInterval, &cfg.RotateInterval))
	collect(durationEnv(EnvLiveInterval, &cfg.LiveInterval))
	collect(durationEnv(EnvHTTPTimeout, &cfg.HTTPTimeout))
	collect(durationEnv(EnvSplash, &cfg.Splash))
	collect(floatEnv(EnvProviderRate, &cfg.ProviderRate))
	collect(boolEnv(EnvConsole, &cfg.Console))
	collect(boolEnv(EnvDevMode, &cfg.DevMode))

	return errors.Join(errs...)
}

func stringEnv(key string, dst *string) {
	if raw, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(raw)
	}
}

func intEnv(key string, dst *int) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer (got %q): %w", key, raw, err)
	}
	*dst = val
	return nil
}

func floatEnv(key string, dst *float64) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number (got %q): %w", key, raw, err)
	}
	*dst = val
	return nil
}

func durationEnv(key string, dst *time.Duration) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s must be a duration (got %q): %w", key, raw, err)
	}
	*dst = val
	return nil
}

func boolEnv(key string, dst *bool) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
	}
	*dst = val
	return nil
}
