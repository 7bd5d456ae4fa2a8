package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/sensorplot/sensorplot/internal/config"
	"github.com/sensorplot/sensorplot/internal/runner"
)

func main() {
	configPath := flag.String("config", "sensorplot.yaml", "path to optional config file")
	flag.Parse()

	// stdout belongs to the interactive console; diagnostics go to stderr.
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, found, err := config.LoadOrDefault(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Level())
	slog.Debug("config loaded",
		"path", *configPath,
		"found", found,
		"backend", cfg.Renderer.Backend,
		"offset", cfg.Offset,
	)

	dir, err := os.Getwd()
	if err != nil {
		slog.Error("failed to resolve working directory", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := runner.New(dir, cfg, os.Stdin, os.Stdout, color.NoColor)

	// Pick up edits, or a newly created file, while the prompt is waiting.
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			level.Set(updated.Level())
			r.UpdateConfig(updated)
		}); err != nil {
			slog.Warn("config watcher stopped", "err", err)
		}
	}()

	_, err = r.Run(ctx)
	cancel()
	switch {
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	case err != nil:
		slog.Error("sensorplot failed", "err", err)
		os.Exit(1)
	}
}
