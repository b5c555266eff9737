package provider

import (
	"context"
	"time"

	"github.com/rook-computer/scoreboard/internal/games"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider retries failed calls with linear backoff.
type retryingProvider struct {
	inner       GameProvider
	logger      logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps inner with retries. If maxAttempts or backoff are
// <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger logger, maxAttempts int, backoff time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error) {
	var out []games.Game
	err := r.do(ctx, "games "+string(sport), func() error {
		var err error
		out, err = r.inner.FetchGames(ctx, sport, teams, utcOffset)
		return err
	})
	return out, err
}

func (r *retryingProvider) FetchUpdate(ctx context.Context, game games.Game) (games.Update, error) {
	var out games.Update
	err := r.do(ctx, "update "+game.ID, func() error {
		var err error
		out, err = r.inner.FetchUpdate(ctx, game)
		return err
	})
	return out, err
}

func (r *retryingProvider) do(ctx context.Context, what string, call func() error) error {
	if r.inner == nil {
		return ErrProviderUnavailable
	}
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == r.maxAttempts {
			break
		}

		r.warn("%s: attempt %d/%d failed: %v", what, attempt, r.maxAttempts, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}
	return lastErr
}

func (r *retryingProvider) warn(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warnf("provider", format, args...)
	}
}
