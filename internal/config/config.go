package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/mexicano/internal/tournament"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// Parse reads configuration from environment variables only and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := tournament.ValidateSettings(cfg.Settings()); err != nil {
		return Config{}, fmt.Errorf("invalid tournament config: %w", err)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

// Settings returns the initial tournament settings.
func (c Config) Settings() tournament.Settings {
	return tournament.Settings{
		Courts:       c.Tournament.Courts,
		TargetPoints: c.Tournament.TargetPoints,
	}
}

// SlackEnabled reports whether Slack notifications can be posted.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// PubSubEnabled reports whether snapshots are published to Pub/Sub.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != ""
}
