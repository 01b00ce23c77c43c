package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitrinelabs/vitrine/internal/config"
	"github.com/vitrinelabs/vitrine/internal/events"
	"github.com/vitrinelabs/vitrine/internal/kv"
	"github.com/vitrinelabs/vitrine/internal/kv/postgres"
	"github.com/vitrinelabs/vitrine/internal/prefs"
	"github.com/vitrinelabs/vitrine/internal/profile"
	"github.com/vitrinelabs/vitrine/internal/server"
	vitrinesync "github.com/vitrinelabs/vitrine/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the vitrine HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// The store dials lazily on first use. An unreachable database
		// does not stop the server from coming up; requests soft-fail
		// until the process is restarted against a healthy database.
		var pgStore *postgres.Store
		store := kv.NewClient(func() (kv.Backend, error) {
			s, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			pgStore = s
			return s, nil
		}, logger)

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (VITRINE_NATS_URL not set)")
		}

		// Create server components.
		svc := prefs.NewService(store)
		facade := profile.New(svc)
		profileServer := server.NewProfileServer(facade, store, publisher)

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: profileServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start sync scheduler if an S3 destination is configured. The
		// exporter needs a resolved database handle, so the store is
		// dialed here before the first export.
		var scheduler *vitrinesync.Scheduler
		if cfg.SyncInterval > 0 && cfg.SyncS3Bucket != "" {
			if !store.Available() || pgStore == nil {
				logger.Error("sync disabled, store unavailable")
			} else {
				s3Dest, err := vitrinesync.NewS3Destination(
					context.Background(),
					cfg.SyncS3Bucket,
					cfg.SyncS3Key,
					cfg.SyncS3Region,
					cfg.SyncS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 sync destination", "err", err)
				} else {
					scheduler = vitrinesync.NewScheduler(pgStore, []vitrinesync.Destination{s3Dest}, cfg.SyncInterval, logger)
					scheduler.Start()
					logger.Info("sync scheduler started", "interval", cfg.SyncInterval, "bucket", cfg.SyncS3Bucket)
				}
			}
		}

		logger.Info("vitrine server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
