// Package main provides the relic deduplication service entry point.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/thebtf/relic/internal/config"
	gormdb "github.com/thebtf/relic/internal/db/gorm"
	"github.com/thebtf/relic/internal/watcher"
	"github.com/thebtf/relic/internal/worker"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "relic.yaml", "Path to YAML config file")
	listen := flag.String("listen", "", "Listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load config, using defaults")
		cfg = config.Default()
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if !*debug {
		if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down relic service")
		cancel()
	}()

	store, err := gormdb.NewStore(gormdb.Config{
		Path:     cfg.DBPath,
		LogLevel: logger.Silent,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize SQLite store")
	}
	defer store.Close()

	svc := worker.New(store, cfg.EngineOptions(), cfg.Listen, Version)

	// Hot-reload engine options when the config file changes.
	startConfigWatcher(*configPath, svc)

	if err := svc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Service error")
	}
}

// startConfigWatcher reloads engine options on config file changes.
func startConfigWatcher(path string, svc *worker.Service) {
	w, err := watcher.New(path, func() {
		cfg, err := config.Load(path)
		if err != nil {
			log.Warn().Err(err).Msg("Config reload failed, keeping current engine options")
			return
		}
		svc.ReloadEngine(cfg.EngineOptions())
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create config watcher")
		return
	}
	if err := w.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start config watcher")
	}
}
