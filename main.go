package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/config"
	"github.com/mauv0809/mexicano/internal/database"
	"github.com/mauv0809/mexicano/internal/history"
	server "github.com/mauv0809/mexicano/internal/http"
	"github.com/mauv0809/mexicano/internal/metrics"
	"github.com/mauv0809/mexicano/internal/notifier"
	"github.com/mauv0809/mexicano/internal/notifier/slack"
	"github.com/mauv0809/mexicano/internal/playtomic"
	"github.com/mauv0809/mexicano/internal/pubsub"
	"github.com/mauv0809/mexicano/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	cfg := config.Load()
	if cfg.LogFormat == "json" {
		log.SetFormatter(log.JSONFormatter)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	// The tournament starts empty, so results of a previous process are stale.
	journal := history.New(db)
	if err := journal.Clear(); err != nil {
		log.Fatalf("Failed to clear round journal: %s", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	playtomicClient := playtomic.NewClient(cfg.Playtomic.BaseURL)
	slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	if !cfg.SlackEnabled() {
		log.Warn("Slack is not configured, announcements will only be logged")
	}

	subscribers := []tournament.Subscriber{history.NewRecorder(journal)}
	var pubsubClient pubsub.PubSubClient
	if cfg.PubSubEnabled() {
		pubsubClient = pubsub.New(cfg.ProjectID, cfg.PubSub.TopicPrefix)
		defer pubsubClient.Close()
		// Announcements are made when the push subscription delivers the snapshot.
		subscribers = append(subscribers, pubsub.NewPublisher(pubsubClient, metricsSvc))
		log.Info("Publishing tournament events to Pub/Sub", "project", cfg.ProjectID, "prefix", cfg.PubSub.TopicPrefix)
	} else {
		subscribers = append(subscribers, notifier.NewAnnouncer(slackNotifier, cfg.DryRun))
	}

	t, err := tournament.New(cfg.Settings(), metricsSvc, subscribers...)
	if err != nil {
		log.Fatalf("Failed to create tournament: %s", err)
	}

	s := server.NewServer(
		t,
		journal,
		metricsSvc,
		metricsHandler,
		cfg,
		playtomicClient,
		slackNotifier,
		pubsubClient,
	)

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

	go func() {
		log.Info("Server started", "port", cfg.Port, "courts", cfg.Tournament.Courts, "target_points", cfg.Tournament.TargetPoints)
		serverErrors <- srv.ListenAndServe()
	}()

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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
