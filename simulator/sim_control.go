package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/provider"
	"github.com/rook-computer/scoreboard/internal/provider/fixture"
)

var errSimulated = errors.New("simulated failure")

// SimFaults switches individual collaborators into failure mode.
type SimFaults struct {
	ScanFail   bool `json:"scanFail"`
	UpdateFail bool `json:"updateFail"`
	LogoFail   bool `json:"logoFail"`
}

// SimControl stands between the engine and the fixture data. It is the
// simulator's game provider and logo fetcher, with switchable scenarios and
// injectable faults.
type SimControl struct {
	games    *fixture.Provider
	logos    fixture.Logos
	fallback fixture.Scenario
	faults   atomic.Pointer[SimFaults]

	// rescan is called after a scenario switch so the panel follows at once.
	rescan func()
}

func NewSimControl(scenario fixture.Scenario, rescan func()) *SimControl {
	if scenario == "" {
		scenario = fixture.ScenarioMixed
	}
	c := &SimControl{games: fixture.New(scenario), fallback: scenario, rescan: rescan}
	c.faults.Store(&SimFaults{})
	return c
}

var _ provider.GameProvider = (*SimControl)(nil)

func (c *SimControl) FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error) {
	if c.Faults().ScanFail {
		return nil, errSimulated
	}
	return c.games.FetchGames(ctx, sport, teams, utcOffset)
}

func (c *SimControl) FetchUpdate(ctx context.Context, game games.Game) (games.Update, error) {
	if c.Faults().UpdateFail {
		return games.Update{}, errSimulated
	}
	return c.games.FetchUpdate(ctx, game)
}

func (c *SimControl) Fetch(ctx context.Context, url string) (image.Image, error) {
	if c.Faults().LogoFail {
		return nil, errSimulated
	}
	return c.logos.Fetch(ctx, url)
}

func (c *SimControl) Scenario() fixture.Scenario { return c.games.Scenario() }

// Switch changes the fixture scenario. An empty name goes back to the one the
// simulator started with.
func (c *SimControl) Switch(name string) error {
	next := c.fallback
	if name = strings.TrimSpace(name); name != "" {
		parsed, err := fixture.ParseScenario(name)
		if err != nil {
			return err
		}
		next = parsed
	}
	c.games.SetScenario(next)
	if c.rescan != nil {
		c.rescan()
	}
	return nil
}

// Reset clears every fault and restores the startup scenario.
func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	return c.Switch("")
}

func (c *SimControl) Faults() SimFaults { return *c.faults.Load() }

func (c *SimControl) SetFaults(f SimFaults) { c.faults.Store(&f) }

func registerSimEndpoints(r chi.Router, control *SimControl) {
	r.Route("/sim", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			simRespond(w, http.StatusOK, map[string]any{
				"scenario":  control.Scenario(),
				"scenarios": fixture.Scenarios,
				"faults":    control.Faults(),
			})
		})
		r.Post("/reset", func(w http.ResponseWriter, _ *http.Request) {
			if err := control.Reset(); err != nil {
				simFail(w, http.StatusInternalServerError, err)
				return
			}
			simRespond(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
		})
		r.Post("/scenario/{name}", func(w http.ResponseWriter, r *http.Request) {
			if err := control.Switch(chi.URLParam(r, "name")); err != nil {
				simFail(w, http.StatusBadRequest, err)
				return
			}
			simRespond(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
		})
		r.Get("/faults", func(w http.ResponseWriter, _ *http.Request) {
			simRespond(w, http.StatusOK, control.Faults())
		})
		// Fields missing from the body keep their current value.
		r.Post("/faults", func(w http.ResponseWriter, r *http.Request) {
			next := control.Faults()
			if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
				simFail(w, http.StatusBadRequest, fmt.Errorf("decode faults: %w", err))
				return
			}
			control.SetFaults(next)
			simRespond(w, http.StatusOK, next)
		})
	})
}

func simRespond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func simFail(w http.ResponseWriter, status int, err error) {
	simRespond(w, status, map[string]string{"error": err.Error()})
}
