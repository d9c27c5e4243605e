// cmd/reconcile/main.go は users.total_score を進捗テーブルから再計算します。
// -once なら1回だけ実行して終了し、それ以外は reconcile.interval ごとに繰り返します。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/logging"
	"go_duduolingo/internal/repository"
	"go_duduolingo/internal/scheduler"
	"go_duduolingo/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run は終了コードを返します。DB は return 前に必ず閉じます
func run(args []string) int {
	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	configDir := fs.String("config", "configs", "directory containing config.yaml")
	once := fs.Bool("once", false, "recalculate once and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.LoadConfig(*configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		return 1
	}
	logger := logging.NewLogger(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	progressService := service.NewProgressService(db,
		repository.NewGormUserRepository(),
		repository.NewGormProgressRepository(),
		repository.NewGormContentRepository(),
	)

	if *once {
		updated, err := progressService.RecalculateTotals(context.Background())
		if err != nil {
			slog.Error("Total score reconciliation failed", slog.Any("error", err), slog.Int("updated", updated))
			return 1
		}
		slog.Info("Total score reconciliation finished", slog.Int("updated", updated))
		return 0
	}

	s := scheduler.New(progressService, config.Cfg.Reconcile.Interval, logger)
	if err := s.Start(); err != nil {
		slog.Error("Failed to start scheduler", slog.Any("error", err))
		return 1
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Stop()
	return 0
}
