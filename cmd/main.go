// cmd/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/detect"
	"go_duduolingo/internal/handlers"
	"go_duduolingo/internal/logging"
	"go_duduolingo/internal/media"
	"go_duduolingo/internal/repository"
	"go_duduolingo/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig(*configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		return 1
	}

	logger := logging.NewLogger(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 1. Database
	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		return 1
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 2. Dependency Injection
	userRepo := repository.NewGormUserRepository()
	progressRepo := repository.NewGormProgressRepository()
	contentRepo := repository.NewGormContentRepository()

	resolver := media.NewResolver(config.Cfg.Media.ImagePrefix, config.Cfg.Media.VideoPrefix)
	detector := detect.NewClient(config.Cfg.Detect.Endpoint, config.Cfg.Detect.APIKey, config.Cfg.Detect.Timeout)

	router := handlers.NewRouter(config.Cfg, db, handlers.Services{
		User:        service.NewUserService(db, userRepo),
		Progress:    service.NewProgressService(db, userRepo, progressRepo, contentRepo),
		Leaderboard: service.NewLeaderboardService(db, userRepo, config.Cfg.App),
		Content:     service.NewContentService(db, contentRepo, progressRepo, resolver),
		Detect:      service.NewDetectService(detector),
	}, logger)

	// 3. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second, // 画像アップロードがあるので長め
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
		return 1
	case <-quit:
	}
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
	return 0
}
