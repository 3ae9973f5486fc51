package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"ouinon/internal/config"
	"ouinon/internal/pagemeta"
	"ouinon/internal/site"
	"ouinon/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	eventLog, err := storage.Open(cfg.Store.Path)
	if err != nil {
		log.Error("open event log", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout()}
	meta := pagemeta.New(httpClient, cfg.HTTP.UserAgent)
	builder := site.NewBuilder(cfg.Site.Title, meta, log)

	status := site.Compute(eventLog.Events(), time.Now())
	page := builder.Build(ctx, status)

	var buf bytes.Buffer
	if err := site.Render(&buf, page); err != nil {
		log.Error("render page", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Site.OutputDir, 0o755); err != nil {
		log.Error("create output directory", "path", cfg.Site.OutputDir, "error", err)
		os.Exit(1)
	}
	outPath := filepath.Join(cfg.Site.OutputDir, "index.html")
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		log.Error("write page", "path", outPath, "error", err)
		os.Exit(1)
	}

	log.Info("page generated",
		"path", outPath,
		"events", eventLog.Len(),
		"has_event_today", status.HasEventToday,
		"days_since", status.DaysSince,
	)
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
