package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rook-computer/scoreboard/internal/app"
	"github.com/rook-computer/scoreboard/internal/config"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/provider/fixture"
)

// simDefaults run the engine off-device: no framebuffer, a PNG frame file and
// shorter intervals.
func simDefaults(root string) config.Config {
	cfg := config.Default()
	cfg.TeamsFile = filepath.Join(root, "teams.json")
	cfg.Provider = config.ProviderFixture
	cfg.RotateInterval = 5 * time.Second
	cfg.LiveInterval = 3 * time.Second
	cfg.Framebuffer = ""
	cfg.Console = false
	cfg.FramePNG = filepath.Join(root, "frame.png")
	cfg.ListenAddr = ":8080"
	cfg.DevMode = true
	cfg.PanelURL = "http://127.0.0.1:8080"
	cfg.Splash = 3 * time.Second
	return cfg
}

func main() {
	configPath := flag.String("config", os.Getenv("SCOREBOARD_CONFIG"), "YAML config file (optional)")
	root := flag.String("root", "/tmp/scoreboard-sim", "directory for the teams file and frame.png")
	scenario := flag.String("scenario", string(fixture.ScenarioMixed), "fixture scenario: none | rotate | live | mixed")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if err := os.MkdirAll(*root, 0o755); err != nil {
		fmt.Println("simulator root error:", err)
		os.Exit(2)
	}
	cfg, err := config.Load(simDefaults(*root), *configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	startup, err := fixture.ParseScenario(*scenario)
	if err != nil {
		fmt.Println("scenario error:", err)
		os.Exit(2)
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Service: "scoreboard-sim", Pretty: true})

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, logger)
	control := NewSimControl(startup, a.Rescan)
	a.Provider = control
	a.Fetcher = control
	a.Routes = func(r chi.Router) { registerSimEndpoints(r, control) }

	logger.Infof("sim", "scenario %s, frames at %s", startup, cfg.FramePNG)
	logger.Infof("sim", "API: http://%s/api/v1/  controls: http://%s/sim/", displayAddr(cfg.ListenAddr), displayAddr(cfg.ListenAddr))

	if err := a.Start(processCtx); err != nil {
		logger.Errorf("sim", "%v", err)
		os.Exit(1)
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
