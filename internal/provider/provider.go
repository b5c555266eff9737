// Package provider defines how game snapshots reach the display engine and
// wraps providers with retry and rate limiting.
package provider

import (
	"context"
	"errors"

	"github.com/rook-computer/scoreboard/internal/games"
)

// ErrProviderUnavailable is returned by decorators with nothing to wrap.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrUnknownGame is returned when an update is requested for a game the
// upstream no longer knows about.
var ErrUnknownGame = errors.New("unknown game")

// GameProvider fetches game snapshots for watched teams.
//
// FetchGames returns the games of one sport involving any of teams, in
// upstream order, with scheduled start times shifted by utcOffset hours.
// A team listed twice yields its game twice. Zero games is not an error.
//
// FetchUpdate polls the live score, clock and period of a game previously
// returned by FetchGames.
type GameProvider interface {
	FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error)
	FetchUpdate(ctx context.Context, game games.Game) (games.Update, error)
}

type logger interface {
	Warnf(component string, format string, args ...interface{})
}
