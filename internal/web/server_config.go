package web

import "time"

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - real device: :80
// - simulator:   :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool

	// AllowedOrigins enables CORS for these origins. Dev mode falls back to
	// local development origins when empty.
	AllowedOrigins []string

	// TeamWritesPerMinute caps PUT /api/v1/teams per client IP.
	TeamWritesPerMinute int
}

const (
	defaultListenAddr          = ":80"
	defaultTeamWritesPerMinute = 10
	teamWriteWindow            = time.Minute
)

func (c ServerConfig) withDefaults() ServerConfig {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.TeamWritesPerMinute <= 0 {
		c.TeamWritesPerMinute = defaultTeamWritesPerMinute
	}
	if c.DevMode && len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = devOrigins
	}
	return c
}
