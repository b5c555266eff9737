package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/watchlist"
)

// shownFrame is what one Swap put on the panel.
type shownFrame struct {
	texts  []string
	images int
}

type fakeSurface struct {
	pending shownFrame
	shown   []shownFrame
	swapErr error
	textErr error
}

func (s *fakeSurface) Clear() { s.pending = shownFrame{} }

func (s *fakeSurface) DrawText(x, y int, c color.Color, size render.FontSize, text string) error {
	if s.textErr != nil {
		return s.textErr
	}
	s.pending.texts = append(s.pending.texts, text)
	return nil
}

func (s *fakeSurface) DrawImage(img image.Image, x, y int) { s.pending.images++ }

func (s *fakeSurface) Swap() error {
	if s.swapErr != nil {
		return s.swapErr
	}
	s.shown = append(s.shown, s.pending)
	return nil
}

func (s *fakeSurface) last() shownFrame {
	if len(s.shown) == 0 {
		return shownFrame{}
	}
	return s.shown[len(s.shown)-1]
}

type countingFetcher struct {
	calls   []string
	failing map[string]bool
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.calls = append(f.calls, url)
	if f.failing[url] {
		return nil, fmt.Errorf("fetch %s: connection refused", url)
	}
	return image.NewRGBA(image.Rect(0, 0, render.LogoSize, render.LogoSize)), nil
}

type fakeTeams struct {
	list  watchlist.WatchList
	loads int
}

func (f *fakeTeams) Load(ctx context.Context) watchlist.WatchList {
	f.loads++
	return f.list.Clone()
}

// scriptedProvider returns scans[i] during the i-th scan, repeating the last
// one. The scan index comes from the watch-list loads, which happen once per
// scan.
type scriptedProvider struct {
	scans      [][]games.Game
	scanErr    error
	updateErr  error
	scanIndex  func() int
	gameCalls  []games.Sport
	updates    []string
	nextUpdate func(g games.Game, n int) games.Update
}

func (p *scriptedProvider) FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error) {
	p.gameCalls = append(p.gameCalls, sport)
	if p.scanErr != nil {
		return nil, p.scanErr
	}
	if len(p.scans) == 0 {
		return nil, nil
	}
	idx := p.scanIndex()
	if idx >= len(p.scans) {
		idx = len(p.scans) - 1
	}
	var out []games.Game
	for _, g := range p.scans[idx] {
		if g.Sport == sport {
			out = append(out, g)
		}
	}
	return out, nil
}

func (p *scriptedProvider) FetchUpdate(ctx context.Context, g games.Game) (games.Update, error) {
	p.updates = append(p.updates, g.ID)
	if p.updateErr != nil {
		return games.Update{}, p.updateErr
	}
	if p.nextUpdate != nil {
		return p.nextUpdate(g, len(p.updates)), nil
	}
	live, _ := g.Detail.(games.InProgress)
	live.Score.Home++
	return games.Update{Score: live.Score, Clock: live.Clock, Period: live.Period}, nil
}

// scriptedSleep records every sleep and cancels the run on the limit-th one.
type scriptedSleep struct {
	durations []time.Duration
	limit     int
	cancel    context.CancelFunc
}

func (s *scriptedSleep) Sleep(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	s.durations = append(s.durations, d)
	if len(s.durations) >= s.limit {
		s.cancel()
		return ctx.Err()
	}
	select {
	case <-wake:
		return ErrRescan
	default:
		return nil
	}
}

type harness struct {
	surface  *fakeSurface
	fetcher  *countingFetcher
	teams    *fakeTeams
	provider *scriptedProvider
	sleeper  *scriptedSleep
	store    *state.Store
	sched    *Scheduler
}

func allSports(team string) watchlist.WatchList {
	w := watchlist.WatchList{}
	for _, sport := range games.Sports {
		w[sport] = []string{team}
	}
	return w
}

func newHarness(scans ...[]games.Game) *harness {
	h := &harness{
		surface:  &fakeSurface{},
		fetcher:  &countingFetcher{failing: map[string]bool{}},
		teams:    &fakeTeams{list: allSports("any")},
		provider: &scriptedProvider{scans: scans},
		sleeper:  &scriptedSleep{},
		store:    state.NewStore(),
	}
	h.provider.scanIndex = func() int { return h.teams.loads - 1 }
	h.sched = &Scheduler{
		Config:   Config{UTCOffset: -5},
		Teams:    h.teams,
		Provider: h.provider,
		Painter:  &Painter{Surface: h.surface, Fetcher: h.fetcher},
		Store:    h.store,
		Sleep:    h.sleeper.Sleep,
	}
	return h
}

// run drives the scheduler until the limit-th sleep.
func (h *harness) run(t *testing.T, sleeps int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.sleeper.limit = sleeps
	h.sleeper.cancel = cancel
	if err := h.sched.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
}

func team(name, abbreviation string) games.Team {
	return games.Team{Name: name, Abbreviation: abbreviation, LogoURL: "http://logos/" + abbreviation + ".png"}
}

var kickoff = time.Date(2025, 11, 2, 13, 0, 0, 0, time.UTC)

func scheduledGame(id string, sport games.Sport, away, home games.Team) games.Game {
	return games.Game{ID: id, Sport: sport, AwayTeam: away, HomeTeam: home, Detail: games.Scheduled{Start: kickoff}}
}

func finalGame(id string, sport games.Sport, away, home games.Team, score games.Score) games.Game {
	return games.Game{ID: id, Sport: sport, AwayTeam: away, HomeTeam: home, Detail: games.Final{Score: score}}
}

func liveGame(id string, sport games.Sport, away, home games.Team, score games.Score) games.Game {
	return games.Game{ID: id, Sport: sport, AwayTeam: away, HomeTeam: home,
		Detail: games.InProgress{Score: score, Clock: "8:41", Period: "Q3"}}
}

var errBoom = errors.New("boom")
