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

	"github.com/joho/godotenv"

	"github.com/buildcore/vendor-intake/internal/api"
	"github.com/buildcore/vendor-intake/internal/api/middleware"
	"github.com/buildcore/vendor-intake/internal/client"
	"github.com/buildcore/vendor-intake/internal/client/monday"
	"github.com/buildcore/vendor-intake/internal/client/s3archive"
	"github.com/buildcore/vendor-intake/internal/config"
	"github.com/buildcore/vendor-intake/internal/email"
	"github.com/buildcore/vendor-intake/internal/mapping"
	"github.com/buildcore/vendor-intake/internal/service"
	"github.com/buildcore/vendor-intake/internal/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	mondayClient := monday.NewMondayClient(cfg.MondayAPIURL, cfg.MondayAPIKey, cfg.BoardID)

	// The archiver is optional: without a bucket, submissions proceed
	// without attachment storage.
	var archiver client.FileArchiver
	if cfg.ArchiveBucket != "" {
		a, err := s3archive.NewArchiver(context.Background(), cfg.AWSRegion, cfg.AWSEndpoint, cfg.ArchiveBucket, cfg.ArchivePrefix)
		if err != nil {
			slog.Error("archive store init failed", "error", err)
			os.Exit(1)
		}
		archiver = a
	} else {
		slog.Warn("ARCHIVE_BUCKET not set, file archival disabled")
	}

	notifier := email.NewNotifier(cfg.FromEmail, cfg.TeamEmail)

	vendorService := service.NewVendorService(
		mondayClient,
		archiver,
		notifier,
		mapping.NewTransformer(),
		validation.NewValidator(),
		cfg.DuplicateCheckEnabled,
		cfg.AutoEmailEnabled && cfg.SendEmails,
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	router := api.SetupRouter(cfg, mondayClient, vendorService, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("vendor intake server started",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"monday_configured", cfg.MondayConfigured(),
			"board_configured", cfg.BoardConfigured(),
			"cors_origins", cfg.CORSOrigins,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
