package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/backup"
	"github.com/giubellucas/calendario-inteligente/internal/config"
	"github.com/giubellucas/calendario-inteligente/internal/events"
	"github.com/giubellucas/calendario-inteligente/internal/extract"
	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/reminder"
	"github.com/giubellucas/calendario-inteligente/internal/server"
	"github.com/giubellucas/calendario-inteligente/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calendar assistant server",
	// Override PersistentPreRunE so we don't create an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (CALIN_NATS_URL not set)")
		}

		// Reminder scheduler.
		reminders := reminder.NewScheduler(publisher, logger)

		// Assistant pipeline, with the remote extractor when configured.
		opts := []assistant.Option{assistant.WithReminders(reminders)}
		if cfg.OpenAIAPIKey != "" {
			extractor := extract.New(extract.Config{
				APIKey:  cfg.OpenAIAPIKey,
				BaseURL: cfg.OpenAIBaseURL,
				Model:   cfg.OpenAIModel,
				Timeout: cfg.ExtractTimeout,
			}, logger)
			opts = append(opts, assistant.WithExtractor(extractor))
			logger.Info("remote extraction enabled", "model", cfg.OpenAIModel)
		} else {
			logger.Info("remote extraction disabled (CALIN_OPENAI_API_KEY not set), using local parser")
		}
		asst := assistant.New(store, publisher, logger, opts...)

		// Re-arm reminders for upcoming events so restarts don't drop them.
		rearmReminders(store, reminders, logger)

		// HTTP server.
		calendarServer := server.New(store, asst, publisher, reminders, logger)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: calendarServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start backup scheduler if any destinations are configured.
		var scheduler *backup.Scheduler
		if cfg.BackupInterval > 0 {
			var dests []backup.Destination

			if cfg.BackupS3Bucket != "" {
				s3Dest, err := backup.NewS3Destination(
					context.Background(),
					cfg.BackupS3Bucket,
					cfg.BackupS3Key,
					cfg.BackupS3Region,
					cfg.BackupS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 backup destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("backup S3 destination enabled", "bucket", cfg.BackupS3Bucket, "key", cfg.BackupS3Key)
				}
			}

			if cfg.BackupGitRepo != "" {
				gitDest := backup.NewGitDestination(cfg.BackupGitRepo, cfg.BackupGitFile, cfg.BackupGitBranch)
				dests = append(dests, gitDest)
				logger.Info("backup git destination enabled", "repo", cfg.BackupGitRepo, "file", cfg.BackupGitFile)
			}

			if len(dests) > 0 {
				scheduler = backup.NewScheduler(store, dests, cfg.BackupInterval, logger)
				scheduler.Start()
				logger.Info("backup scheduler started", "interval", cfg.BackupInterval)
			}
		}

		logger.Info("calendar server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("backup scheduler stopped")
		}

		reminders.Stop()
		logger.Info("reminder scheduler stopped")

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

// rearmReminders schedules reminders for every pending future event. Timers
// live in process memory only, so a restart would otherwise lose them.
func rearmReminders(st *postgres.PostgresStore, reminders *reminder.Scheduler, logger *slog.Logger) {
	now := time.Now()
	completed := false
	upcoming, err := st.ListEvents(context.Background(), model.EventFilter{
		From:      &now,
		Completed: &completed,
	})
	if err != nil {
		logger.Error("failed to list upcoming events for reminders", "err", err)
		return
	}
	for _, e := range upcoming {
		reminders.Arm(e.ID, e.Title, e.EventDate)
	}
	if len(upcoming) > 0 {
		logger.Info("reminders re-armed", "count", len(upcoming))
	}
}
