package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/time/rate"

	"sitewatch/internal/config"
	"sitewatch/internal/monitor"
	"sitewatch/internal/notifier"
	"sitewatch/internal/probe"
	"sitewatch/internal/storage"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sitewatch %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging)
	logger.Info("starting sitewatch", "version", version, "tick_interval", cfg.Monitor.TickInterval)

	store, err := storage.NewSQLiteStore(cfg.Database.Path, cfg.Database.MaxReadConns)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("database opened", "path", cfg.Database.Path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var email notifier.EmailTransport
	if cfg.EmailEnabled() {
		email = notifier.NewSMTPSender(cfg.Alerts.Email)
		logger.Info("email alerts enabled", "host", cfg.Alerts.Email.Host)
	}
	var sms notifier.SMSTransport
	if cfg.SMSEnabled() {
		sms = notifier.NewBrevoSMSSender(cfg.Alerts.SMS)
		logger.Info("sms alerts enabled", "sender", cfg.Alerts.SMS.Sender)
	}
	dispatcher := notifier.NewDispatcher(email, sms, logger)

	prober := probe.New(cfg.Monitor.ProbeTimeout, cfg.Monitor.AllowPrivateTargets)
	limiter := rate.NewLimiter(rate.Limit(cfg.Monitor.ProbeRatePerSec), cfg.Monitor.ProbeBurst)

	mon := monitor.New(store, prober, dispatcher, monitor.Config{
		TickInterval:  cfg.Monitor.TickInterval,
		DueSlop:       cfg.Monitor.DueSlop,
		ScoreWindow:   cfg.Monitor.ScoreWindow,
		MaxConcurrent: cfg.Monitor.MaxConcurrent,
	}, limiter, logger)
	go mon.Run(ctx)

	retentionWorker := storage.NewRetentionWorker(store, cfg.Database.RetentionDays, cfg.Database.RetentionPeriod, logger)
	go retentionWorker.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("received signal, shutting down", "signal", sig)
	cancel()

	logger.Info("shutdown complete")
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
