package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/taskmaestro/maestro/internal/config"
	"github.com/taskmaestro/maestro/internal/logger"
	"github.com/taskmaestro/maestro/internal/repository"
	"github.com/taskmaestro/maestro/internal/storage"
	"github.com/taskmaestro/maestro/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskmaestro failed: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal("open database failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	repo := repository.New(store,
		repository.WithClock(time.Now),
		repository.WithLocation(loc),
		repository.WithLogger(log),
	)
	defer func() { err = multierr.Append(err, repo.Close()) }()

	ctx := context.Background()
	if cfg.SeedSampleData {
		if err := repo.SeedSampleData(ctx); err != nil {
			log.Warn("seed sample data failed", zap.Error(err))
		}
	}
	log.Info("starting", zap.String("db", cfg.DBPath), zap.String("timezone", loc.String()))

	program := tea.NewProgram(update.NewModel(ctx, repo, update.Options{
		AnalyticsDays: cfg.AnalyticsDays,
		StateFile:     cfg.StateFile,
		Logger:        log,
	}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	log.Info("stopped")
	return nil
}
