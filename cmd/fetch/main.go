package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"ouinon/internal/classifier"
	"ouinon/internal/config"
	"ouinon/internal/fetcher"
	"ouinon/internal/ingest"
	"ouinon/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	interval := flag.Duration("interval", 0, "keep running, one pass per interval (0 runs a single pass)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	cls, err := classifier.New(classifier.Rules(cfg.Subject))
	if err != nil {
		log.Error("build classifier", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout()}
	f := fetcher.New(httpClient, cfg.HTTP.UserAgent)
	ing := ingest.New(cfg.Feeds.Path, cfg.Store.Path, f, cls, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *interval > 0 {
		log.Info("starting ingest loop", "interval", *interval, "subject", cfg.Subject)
		scheduler.New(ing, *interval, log).Run(ctx)
		log.Info("ingest loop stopped")
		return
	}

	if _, err := ing.Run(ctx); err != nil {
		log.Error("ingest", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
