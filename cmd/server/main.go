package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vighnaharta/internal/apipaths"
	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/cors"
	"github.com/vighnaharta/internal/http"
	"github.com/vighnaharta/internal/logger"
	"github.com/vighnaharta/internal/monitor"
	"github.com/vighnaharta/internal/service"
	"github.com/vighnaharta/internal/session"
	"github.com/vighnaharta/internal/store"
	"github.com/vighnaharta/internal/system"
)

func main() {
	// Load .env file if it exists (optional, won't error if missing)
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize circle store
	repo, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open circle store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	healthMonitor, err := monitor.New(repo, cfg.Store.Driver, cfg.Store.HealthSchedule, slog.Default())
	if err != nil {
		slog.Error("failed to create store health monitor", "error", err)
		os.Exit(1)
	}
	healthMonitor.Start(ctx)
	defer healthMonitor.Stop()

	if !cfg.Auth.Admin.Enabled() && !cfg.Auth.Google.Enabled() && !cfg.Auth.GitHub.Enabled() {
		slog.Warn("no auth providers configured - sign in is unavailable")
	}

	diskPath := "/"
	if cfg.Store.Driver == config.StoreDriverSQLite {
		diskPath = filepath.Dir(cfg.Store.SQLitePath)
	}

	server := http.NewServer(cfg, http.Dependencies{
		Policy:        cors.NewPolicy(cfg.CORS.AllowedOrigin),
		Sessions:      session.New(cfg.Auth, apipaths.AuthMount, slog.Default()),
		CircleService: service.NewCircleService(repo, slog.Default()),
		SystemService: service.NewSystemService(system.NewCollector(diskPath), slog.Default()),
		Health:        healthMonitor,
	})

	slog.Info("starting Vighnaharta API",
		"environment", cfg.Environment,
		"address", cfg.ServerAddress,
		"store", cfg.Store.Driver,
		"cors_origin", cfg.CORS.AllowedOrigin)

	if err := server.Run(ctx); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
