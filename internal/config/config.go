package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromLookup builds a Config from any lookup function shaped like os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	port, ok := lookup("PORT")
	if !ok || port == "" {
		return Config{}, fmt.Errorf("required environment variable PORT is not set")
	}

	kFactor, err := strconv.ParseFloat(getEnv("K_FACTOR", "32"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid K_FACTOR: %w", err)
	}
	if kFactor <= 0 {
		return Config{}, fmt.Errorf("invalid K_FACTOR: must be positive, got %v", kFactor)
	}

	backfill, err := strconv.ParseBool(getEnv("BACKFILL_RATINGS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BACKFILL_RATINGS: %w", err)
	}

	ordering := getEnv("STANDINGS_ORDER", "rating")
	if ordering != "rating" && ordering != "win_rate" {
		return Config{}, fmt.Errorf("invalid STANDINGS_ORDER %q: want rating or win_rate", ordering)
	}

	cfg := Config{
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Leaderboard: LeaderboardConfig{
			Label:    getEnv("LEADERBOARD_LABEL", "Main"),
			KFactor:  kFactor,
			Ordering: ordering,
			Backfill: backfill,
		},
		Database: DatabaseConfig{
			Name:        getEnv("DB_NAME", ""),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			Turso: TursoConfig{
				PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
				AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
			},
		},
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:   getEnv("GCP_PROJECT", ""),
			TopicPrefix: getEnv("PUBSUB_TOPIC_PREFIX", "ladder"),
		},
	}
	return cfg, nil
}
