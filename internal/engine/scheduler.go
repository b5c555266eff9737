package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rook-computer/scoreboard/internal/app/screens"
	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/provider"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/watchlist"
)

const (
	DefaultRotateInterval = 30 * time.Second
	DefaultLiveInterval   = 10 * time.Second
	DefaultLivePolls      = 3
)

// ErrRescan ends the current cycle early so the next one starts with a
// fresh scan.
var ErrRescan = errors.New("rescan requested")

// TeamSource supplies the watch list at the top of every scan.
type TeamSource interface {
	Load(ctx context.Context) watchlist.WatchList
}

// SleepFunc waits for d. It returns ctx.Err() when ctx ends first and
// ErrRescan when wake fires first.
type SleepFunc func(ctx context.Context, d time.Duration, wake <-chan struct{}) error

// Sleep is the SleepFunc backed by a real timer.
func Sleep(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return ErrRescan
	case <-timer.C:
		return nil
	}
}

type Config struct {
	RotateInterval time.Duration
	LiveInterval   time.Duration
	LivePolls      int
	UTCOffset      int
}

func (c Config) withDefaults() Config {
	if c.RotateInterval <= 0 {
		c.RotateInterval = DefaultRotateInterval
	}
	if c.LiveInterval <= 0 {
		c.LiveInterval = DefaultLiveInterval
	}
	if c.LivePolls <= 0 {
		c.LivePolls = DefaultLivePolls
	}
	return c
}

// Scheduler is the display loop. It is the only writer of the render
// surface while Run is active.
type Scheduler struct {
	Config   Config
	Teams    TeamSource
	Provider provider.GameProvider
	Painter  *Painter
	Store    *state.Store
	Logger   logging.Logger

	// Wake interrupts the current sleep and forces a rescan.
	Wake  <-chan struct{}
	Sleep SleepFunc
	Now   func() time.Time

	display state.Display
}

// Run loops scan, classify and display until ctx is cancelled. A cancelled
// context is a clean stop and returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	s.init()
	s.Logger.Infof("engine", "display loop started (rotate %s, live %s x%d)",
		s.Config.RotateInterval, s.Config.LiveInterval, s.Config.LivePolls)

	for {
		err := s.cycle(ctx)
		switch {
		case ctx.Err() != nil:
			s.Logger.Infof("engine", "display loop stopped")
			return nil
		case errors.Is(err, ErrRescan):
			s.Logger.Infof("engine", "watch list changed; rescanning")
		case err != nil:
			return err
		}
	}
}

func (s *Scheduler) init() {
	s.Config = s.Config.withDefaults()
	s.Logger = logging.OrNoop(s.Logger)
	if s.Sleep == nil {
		s.Sleep = Sleep
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.Store == nil {
		s.Store = state.NewStore()
	}
}

// cycle runs one scan and displays its result. It returns ErrRescan or a
// context error when a sleep is interrupted.
func (s *Scheduler) cycle(ctx context.Context) error {
	found, err := s.scan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Logger.Errorf("engine", "scan failed: %v", err)
		return s.sleep(ctx, s.Config.RotateInterval)
	}

	mode := Classify(found)
	metrics.SetMode(mode.Kind.String())
	s.Logger.Debugf("engine", "found %d games; mode %s with %d", len(found), mode.Kind, len(mode.Games))

	switch mode.Kind {
	case ModeNoGames:
		s.Store.SetPhase(state.NO_GAMES)
		return s.showNoGames(ctx)
	case ModeLive:
		s.Store.SetPhase(state.LIVE)
		return s.showLive(ctx, mode.Games)
	default:
		s.Store.SetPhase(state.ROTATING)
		return s.showRotation(ctx, mode.Games)
	}
}

// scan fetches every watched sport in scan order.
func (s *Scheduler) scan(ctx context.Context) ([]games.Game, error) {
	started := s.Now()
	teams := s.Teams.Load(ctx)

	var found []games.Game
	var err error
	for _, sport := range games.Sports {
		if len(teams[sport]) == 0 {
			continue
		}
		var batch []games.Game
		batch, err = s.Provider.FetchGames(ctx, sport, teams[sport], s.Config.UTCOffset)
		if err != nil {
			err = fmt.Errorf("fetch %s games: %w", sport, err)
			break
		}
		found = append(found, batch...)
	}

	metrics.ObserveScan(started, err)
	s.Store.RecordScan(started, len(found), err)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Scheduler) showNoGames(ctx context.Context) error {
	candidate := state.ForMessage(screens.NoGamesMessage)
	if s.display.NeedsRedraw(candidate) {
		s.paint(ctx, candidate, screens.NoGames())
	}
	return s.sleep(ctx, s.Config.RotateInterval)
}

// showRotation shows each game for one rotate interval. Unchanged games are
// not redrawn but still hold the panel for the full interval.
func (s *Scheduler) showRotation(ctx context.Context, rotation []games.Game) error {
	for _, g := range rotation {
		candidate := state.ForGame(g)
		if s.display.NeedsRedraw(candidate) {
			frame, err := screens.ForGame(g)
			if err != nil {
				s.drawFailed(screenFor(g), g, err)
			} else {
				s.paint(ctx, candidate, frame)
			}
		}
		if err := s.sleep(ctx, s.Config.RotateInterval); err != nil {
			return err
		}
	}
	return nil
}

// showLive draws each live game once, then polls it LivePolls times and
// refreshes the text on the cached logos.
func (s *Scheduler) showLive(ctx context.Context, live []games.Game) error {
	for _, g := range live {
		candidate := state.ForGame(g)
		if s.display.NeedsRedraw(candidate) {
			frame, err := screens.Live(g)
			if err != nil {
				s.drawFailed(screens.LiveName, g, err)
			} else {
				s.paint(ctx, candidate, frame)
			}
		}

		current := g
		for i := 0; i < s.Config.LivePolls; i++ {
			if err := s.sleep(ctx, s.Config.LiveInterval); err != nil {
				return err
			}
			current = s.pollLive(ctx, current)
		}
	}
	return nil
}

// pollLive fetches one update and refreshes the panel. Failures keep the
// previous frame and the previous snapshot.
func (s *Scheduler) pollLive(ctx context.Context, g games.Game) games.Game {
	update, err := s.Provider.FetchUpdate(ctx, g)
	metrics.IncLiveUpdate(err)
	if err != nil {
		if ctx.Err() == nil {
			s.Logger.Warnf("engine", "live update for %s failed: %v", g, err)
		}
		return g
	}

	next := g.WithUpdate(update)
	frame, err := screens.Live(next)
	if err != nil {
		s.drawFailed(screens.LiveName, next, err)
		return g
	}
	candidate := state.ForGame(next)
	complete, err := s.Painter.Refresh(candidate.Identity, frame)
	if err != nil {
		s.drawFailed(screens.LiveName, next, err)
		return g
	}
	metrics.IncRedraw(screens.LiveName)
	s.Logger.Debugf("engine", "updated %s: %d-%d %s %s",
		next, update.Score.Away, update.Score.Home, update.Clock, update.Period)
	if complete {
		s.commit(candidate)
	}
	return next
}

// paint performs a full draw and commits the candidate once the frame is on
// the panel. A failed draw leaves the display state untouched so the next
// cycle tries again.
func (s *Scheduler) paint(ctx context.Context, candidate state.Candidate, frame screens.Frame) {
	if err := s.Painter.Paint(ctx, candidate.Identity, frame); err != nil {
		if ctx.Err() == nil {
			s.Logger.Errorf("engine", "draw %s for %s failed: %v", frame.Name, candidate, err)
			metrics.IncDrawFailure(frame.Name)
			s.Store.RecordDrawFailure(err)
		}
		return
	}
	metrics.IncRedraw(frame.Name)
	s.Logger.Infof("engine", "showing %s (%s)", candidate, frame.Name)
	s.commit(candidate)
}

func (s *Scheduler) commit(candidate state.Candidate) {
	s.display.Commit(candidate)
	s.Store.SetDisplay(candidate)
}

func (s *Scheduler) drawFailed(screen string, g games.Game, err error) {
	s.Logger.Errorf("engine", "cannot draw %s: %v", g, err)
	metrics.IncDrawFailure(screen)
	s.Store.RecordDrawFailure(err)
}

func screenFor(g games.Game) string {
	switch g.Status() {
	case games.StatusInProgress:
		return screens.LiveName
	case games.StatusFinal:
		return screens.PostgameName
	default:
		return screens.PregameName
	}
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) error {
	return s.Sleep(ctx, d, s.Wake)
}
