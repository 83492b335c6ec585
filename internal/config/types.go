package config

// Config holds all configuration for the application.
type Config struct {
	Port        string
	LogLevel    string
	Leaderboard LeaderboardConfig
	Database    DatabaseConfig
	Slack       SlackConfig
	PubSub      PubSubConfig
}

type LeaderboardConfig struct {
	Label    string
	KFactor  float64
	Ordering string
	Backfill bool
}

// DatabaseConfig selects where checkpoints go. All fields empty disables checkpointing.
type DatabaseConfig struct {
	Name        string
	DatabaseURL string
	Turso       TursoConfig
}

// Enabled reports whether any checkpoint backend is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Name != "" || d.DatabaseURL != "" || d.Turso.PrimaryURL != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether outbound Slack messages can be sent.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type PubSubConfig struct {
	ProjectID   string
	TopicPrefix string
}
