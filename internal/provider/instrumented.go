package provider

import (
	"context"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/metrics"
)

type instrumentedProvider struct {
	next GameProvider
}

// NewInstrumentedProvider counts every call to next by sport and result.
func NewInstrumentedProvider(next GameProvider) GameProvider {
	return &instrumentedProvider{next: next}
}

func (p *instrumentedProvider) FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error) {
	out, err := p.next.FetchGames(ctx, sport, teams, utcOffset)
	metrics.IncProviderRequest(string(sport), "games", err)
	return out, err
}

func (p *instrumentedProvider) FetchUpdate(ctx context.Context, game games.Game) (games.Update, error) {
	out, err := p.next.FetchUpdate(ctx, game)
	metrics.IncProviderRequest(string(game.Sport), "update", err)
	return out, err
}

// Chain wraps base with instrumentation, the rate limiter and retries. The
// limiter sits inside the retry loop, so every attempt waits for a token.
func Chain(base GameProvider, logger logger, attempts int, perSecond float64) GameProvider {
	p := NewInstrumentedProvider(base)
	p = NewRateLimitedProvider(p, perSecond, 1)
	return NewRetryingProvider(p, logger, attempts, 0)
}
