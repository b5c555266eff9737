// Package app wires the display engine, the watch-list watcher and the HTTP
// API into one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rook-computer/scoreboard/internal/app/screens"
	"github.com/rook-computer/scoreboard/internal/config"
	"github.com/rook-computer/scoreboard/internal/engine"
	"github.com/rook-computer/scoreboard/internal/images"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/provider"
	"github.com/rook-computer/scoreboard/internal/provider/espn"
	"github.com/rook-computer/scoreboard/internal/provider/fixture"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/watchlist"
	"github.com/rook-computer/scoreboard/internal/web"
)

// framePNGScale enlarges each LED in the PNG frame file.
const framePNGScale = 4

type App struct {
	Config config.Config
	Logger logging.Logger
	Store  *state.Store

	// Provider and Fetcher default to what Config.Provider names.
	Provider provider.GameProvider
	Fetcher  images.Fetcher

	// Sinks receive frames in addition to the configured outputs.
	Sinks []render.Sink
	// Routes registers extra HTTP routes (the simulator's controls).
	Routes func(r chi.Router)

	// Sleep replaces the scheduler's timer in tests.
	Sleep engine.SleepFunc

	frames  *render.LatestFrame
	server  atomic.Pointer[web.HTTPServer]
	watcher atomic.Pointer[watchlist.Watcher]
	wake    chan struct{}
}

func New(cfg config.Config, logger logging.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logging.OrNoop(logger),
		Store:  state.NewStore(),
		wake:   make(chan struct{}, 1),
	}
}

// Start runs until ctx is cancelled or a component fails. A render surface
// that cannot be opened is returned before anything is shown.
func (app *App) Start(ctx context.Context) error {
	app.Logger = logging.OrNoop(app.Logger)
	if app.Store == nil {
		app.Store = state.NewStore()
	}
	app.Store.SetPhase(state.BOOTING)
	if app.wake == nil {
		app.wake = make(chan struct{}, 1)
	}

	canvas, err := app.openCanvas()
	if err != nil {
		app.Logger.Errorf("app", "render surface: %v", err)
		return err
	}
	painter := &engine.Painter{Surface: canvas, Fetcher: app.fetcher()}
	defer app.shutdown(painter, canvas)

	base, err := app.provider()
	if err != nil {
		return err
	}
	cfg := app.Config
	chain := provider.Chain(base, app.Logger, cfg.ProviderRetries, cfg.ProviderRate)

	teams := watchlist.NewSource(cfg.TeamsFile, app.Logger)
	teams.Load(ctx)

	if server := app.serve(ctx, teams); server != nil {
		defer func() { _ = server.Stop() }()
	}

	if err := app.splash(ctx, painter); err != nil {
		return nil
	}

	scheduler := &engine.Scheduler{
		Config:   cfg.Scheduler(),
		Teams:    teams,
		Provider: chain,
		Painter:  painter,
		Store:    app.Store,
		Logger:   app.Logger,
		Wake:     app.wake,
		Sleep:    app.Sleep,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	if cfg.TeamsFile != "" {
		watcher := watchlist.NewWatcher(cfg.TeamsFile, app.Logger)
		app.watcher.Store(watcher)
		g.Go(func() error {
			app.forward(gctx, watcher.Changes())
			return nil
		})
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil {
				app.Logger.Warnf("app", "teams file watcher disabled: %v", err)
			}
			return nil
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

func (app *App) openCanvas() (*render.Canvas, error) {
	faces, err := render.LoadFaces()
	if err != nil {
		app.Logger.Warnf("app", "%v", err)
	}

	app.frames = &render.LatestFrame{}
	sinks := []render.Sink{app.frames}
	if path := app.Config.Framebuffer; path != "" {
		fb, err := render.OpenFramebufferSink(path, app.Config.Console, app.Logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fb)
	}
	if path := app.Config.FramePNG; path != "" {
		sinks = append(sinks, render.PNGSink{Path: path, Scale: framePNGScale})
	}
	sinks = append(sinks, app.Sinks...)
	return render.NewCanvas(faces, sinks...), nil
}

func (app *App) provider() (provider.GameProvider, error) {
	if app.Provider != nil {
		return app.Provider, nil
	}
	switch strings.ToLower(app.Config.Provider) {
	case config.ProviderFixture:
		app.Logger.Infof("app", "using fixture provider")
		return fixture.New(fixture.ScenarioMixed), nil
	case config.ProviderESPN, "":
		client := espn.New(app.Config.ESPNBaseURL, app.Config.HTTPTimeout)
		client.Logger = app.Logger
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", app.Config.Provider)
	}
}

func (app *App) fetcher() images.Fetcher {
	if app.Fetcher != nil {
		return app.Fetcher
	}
	if app.Provider == nil && strings.EqualFold(app.Config.Provider, config.ProviderFixture) {
		return fixture.Logos{}
	}
	return images.NewHTTPFetcher(app.Config.HTTPTimeout)
}

// splash shows the control URL as a QR code. It returns ctx.Err() when the
// app is stopped during the splash.
func (app *App) splash(ctx context.Context, painter *engine.Painter) error {
	if app.Config.PanelURL == "" || app.Config.Splash <= 0 {
		return nil
	}
	frame, err := screens.Splash(app.Config.PanelURL)
	if err != nil {
		app.Logger.Warnf("app", "splash: %v", err)
		return nil
	}
	if err := painter.Paint(ctx, screens.SplashName, frame); err != nil {
		app.Logger.Warnf("app", "splash: %v", err)
		return nil
	}
	app.Store.SetPhase(state.SPLASH)
	app.Logger.Infof("app", "splash for %s", app.Config.Splash)

	sleep := app.Sleep
	if sleep == nil {
		sleep = engine.Sleep
	}
	if err := sleep(ctx, app.Config.Splash, nil); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// forward turns teams file changes into rescans. Without a watcher the
// engine still rereads the file at every scan.
func (app *App) forward(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			app.Logger.Infof("app", "teams file changed")
			app.Rescan()
		}
	}
}

// teamsSaved follows a watch-list save from the API. A live watcher sees the
// same write and wakes the scheduler itself.
func (app *App) teamsSaved() {
	if w := app.watcher.Load(); w != nil && w.Watching() {
		app.Logger.Debugf("app", "teams saved; waiting for the file watcher")
		return
	}
	app.Rescan()
}

// serve starts the HTTP API. The display runs on when the port cannot be
// bound.
func (app *App) serve(ctx context.Context, teams *watchlist.Source) *web.HTTPServer {
	if app.Config.ListenAddr == "" {
		return nil
	}
	router := web.NewRouter(web.ServerConfig{
		ListenAddr: app.Config.ListenAddr,
		DevMode:    app.Config.DevMode,
	}, web.APIV1Deps{
		Teams:        teams,
		Status:       app.Store,
		Frames:       app.frames,
		TeamsChanged: app.teamsSaved,
	}, app.Logger)
	if app.Routes != nil {
		app.Routes(router)
	}

	server := web.NewHTTPServer(app.Config.ListenAddr, router, app.Logger)
	if err := server.Start(ctx); err != nil {
		app.Logger.Errorf("app", "web server: %v", err)
		return nil
	}
	app.server.Store(server)
	return server
}

// ListenAddr returns the bound API address, or "" when the API is off.
func (app *App) ListenAddr() string {
	server := app.server.Load()
	if server == nil {
		return ""
	}
	return server.ListenAddr()
}

// Rescan asks the scheduler for a rescan. Requests made while one is
// pending collapse into it.
func (app *App) Rescan() {
	select {
	case app.wake <- struct{}{}:
	default:
	}
}

func (app *App) shutdown(painter *engine.Painter, canvas *render.Canvas) {
	app.Store.SetPhase(state.STOPPED)
	if err := painter.Blank(); err != nil {
		app.Logger.Warnf("app", "blank panel: %v", err)
	}
	if err := canvas.Close(); err != nil {
		app.Logger.Warnf("app", "close outputs: %v", err)
	}
	app.Logger.Infof("app", "stopped")
}
