package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/scoreboard/internal/app"
	"github.com/rook-computer/scoreboard/internal/config"
	"github.com/rook-computer/scoreboard/internal/logging"
)

const envStdioLog = "SCOREBOARD_STDIO_LOG"

func main() {
	configPath := flag.String("config", os.Getenv("SCOREBOARD_CONFIG"), "YAML config file (optional); also configurable via SCOREBOARD_CONFIG")
	debug := flag.Bool("debug", false, "log at debug level")
	pretty := flag.Bool("pretty", false, "human readable log output")
	listen := flag.String("listen", "", "http listen address; overrides "+config.EnvListenAddr)
	teamsFile := flag.String("teams", "", "watch list JSON file; overrides "+config.EnvTeamsFile)
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.Parse()

	// Panics land in this file while the framebuffer owns the console.
	if path := cmp.Or(*stdioLog, os.Getenv(envStdioLog)); path != "" {
		if err := redirectStdIO(path); err != nil {
			fmt.Fprintln(os.Stderr, "stdio log:", err)
		}
	}

	cfg, err := config.Load(config.Default(), *configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *teamsFile != "" {
		cfg.TeamsFile = *teamsFile
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: *pretty})
	logger.Infof("main", "scoreboard starting (provider %s, utc offset %d)", cfg.Provider, cfg.UTCOffset)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger).Start(ctx); err != nil {
		logger.Errorf("main", "app stopped: %v", err)
		stop()
		os.Exit(1)
	}
}
