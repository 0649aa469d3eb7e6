package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jjimmyk/planningp/internal/cli"
	"github.com/jjimmyk/planningp/internal/config"
	"github.com/jjimmyk/planningp/internal/db"
	"github.com/jjimmyk/planningp/internal/repository"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Use-case events feed the metrics registry and, when enabled, the log.
	reg := prometheus.NewRegistry()
	metrics, err := service.NewMetricsObserver(reg)
	if err != nil {
		return err
	}
	observers := []service.UseCaseObserver{metrics}
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	periods := service.NewPeriodService(
		repository.NewSQLitePeriodRepo(database),
		repository.NewSQLitePhaseDataRepo(database),
		db.NewSQLiteUnitOfWork(database),
		cfg.IDGenerator(),
		nil,
		observers...,
	)

	app := &cli.App{
		Periods:       periods,
		DefaultPeriod: cfg.Period,
		IsInteractive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := cli.NewRootCmd(app).ExecuteContext(ctx)

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, reg); err != nil {
			logger.Warn("writing metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}
	return runErr
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
