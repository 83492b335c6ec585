package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/config"
	"github.com/mauv0809/elo-ladder/internal/database"
	"github.com/mauv0809/elo-ladder/internal/events"
	"github.com/mauv0809/elo-ladder/internal/feed"
	server "github.com/mauv0809/elo-ladder/internal/http"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/mauv0809/elo-ladder/internal/metrics"
	"github.com/mauv0809/elo-ladder/internal/notifier"
	"github.com/mauv0809/elo-ladder/internal/notifier/slack"
	"github.com/mauv0809/elo-ladder/internal/snapshot"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	ctx := context.Background()

	var checkpoints snapshot.Store
	if cfg.Database.Enabled() {
		db, dbTeardown, err := database.InitDB(cfg.Database.Name, cfg.Database.Turso.PrimaryURL, cfg.Database.Turso.AuthToken, cfg.Database.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %s", err)
		}
		defer func() {
			log.Info("Closing database connection")
			dbTeardown()
		}()
		log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds(), "dialect", db.Dialect)
		checkpoints = snapshot.New(db)
	} else {
		log.Info("No database configured, checkpointing disabled")
	}

	lb, err := loadLeaderboard(ctx, cfg.Leaderboard, checkpoints)
	if err != nil {
		log.Fatalf("Failed to build leaderboard: %s", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	metricsSvc.SetPlayers(lb.Len())

	var n notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Enabled() {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack not configured, notifications disabled")
	}

	publisher := events.NewNoop()
	if cfg.PubSub.ProjectID != "" {
		p, pubsubTeardown, err := events.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.TopicPrefix)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubTeardown()
		publisher = p
	} else {
		log.Info("GCP project not configured, events disabled")
	}

	hub := feed.New()
	defer hub.Close()

	s := server.NewServer(lb, metricsSvc, metricsHandler, cfg, n, publisher, checkpoints, hub)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "label", lb.Label(), "k_factor", lb.KFactor())
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// loadLeaderboard restores the configured ladder from its last checkpoint, or
// starts an empty one when there is none. A stored k-factor wins over the
// configured one.
func loadLeaderboard(ctx context.Context, cfg config.LeaderboardConfig, checkpoints snapshot.Store) (*leaderboard.Leaderboard, error) {
	opts := []leaderboard.Option{
		leaderboard.WithOrdering(leaderboard.Ordering(cfg.Ordering)),
		leaderboard.WithBackfill(cfg.Backfill),
	}

	if checkpoints != nil {
		snap, err := checkpoints.Load(ctx, cfg.Label)
		switch {
		case err == nil:
			log.Info("Restoring leaderboard from checkpoint", "label", snap.Label, "players", len(snap.Players))
			return leaderboard.FromPortable(snap, opts...)
		case errors.Is(err, snapshot.ErrNoSnapshot):
			log.Info("No checkpoint found, starting empty", "label", cfg.Label)
		default:
			return nil, err
		}
	}
	return leaderboard.New(cfg.Label, cfg.KFactor, opts...)
}
