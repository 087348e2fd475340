package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/fc-knockout/internal/config"
	"github.com/AdamBeresnev/fc-knockout/internal/db"
	"github.com/AdamBeresnev/fc-knockout/internal/service"
	"github.com/AdamBeresnev/fc-knockout/internal/storage"
	"github.com/AdamBeresnev/fc-knockout/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		slog.Error("failed to initialize archive storage", "error", err)
		os.Exit(1)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	tournamentService := service.NewTournamentService(database, store.NewTournamentStore(database), service.NewEngine(nil), uploader)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newRouter(sessionManager, tournamentService, cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}
	slog.Info("server stopped")
}

// newUploader archives to R2 when it is fully configured and to the local disk otherwise
func newUploader(cfg *config.Config) (storage.Uploader, error) {
	if cfg.R2.Complete() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("archiving to Cloudflare R2", "bucket", cfg.R2.BucketName)
		return storage.NewR2Uploader(ctx, cfg.R2)
	}
	slog.Info("archiving to local directory", "dir", cfg.ArchiveDir)
	return storage.NewLocalUploader(cfg.ArchiveDir)
}
