package provider

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/rook-computer/scoreboard/internal/games"
)

// rateLimitedProvider keeps upstream traffic under a requests-per-second
// budget. Calls block until the limiter admits them or ctx is done.
type rateLimitedProvider struct {
	next    GameProvider
	limiter *rate.Limiter
}

// NewRateLimitedProvider returns next unchanged when perSecond <= 0.
func NewRateLimitedProvider(next GameProvider, perSecond float64, burst int) GameProvider {
	if perSecond <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchGames(ctx, sport, teams, utcOffset)
}

func (p *rateLimitedProvider) FetchUpdate(ctx context.Context, game games.Game) (games.Update, error) {
	if p.next == nil {
		return games.Update{}, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return games.Update{}, err
	}
	return p.next.FetchUpdate(ctx, game)
}
