package config

// Config holds all configuration for the application.
type Config struct {
	Port       string          `env:"PORT" envDefault:"8080"`
	LogLevel   string          `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string          `env:"LOG_FORMAT" envDefault:"text"`
	DBName     string          `env:"DB_NAME" envDefault:":memory:"`
	DryRun     bool            `env:"DRY_RUN" envDefault:"false"`
	ProjectID  string          `env:"GCP_PROJECT"`
	Turso      TursoConfig     `envPrefix:"TURSO_"`
	Slack      SlackConfig     `envPrefix:"SLACK_"`
	PubSub     PubSubConfig    `envPrefix:"PUBSUB_"`
	Playtomic  PlaytomicConfig `envPrefix:"PLAYTOMIC_"`
	Tournament TournamentConfig
}
type SlackConfig struct {
	Token         string `env:"BOT_TOKEN"`
	ChannelID     string `env:"CHANNEL_ID"`
	SigningSecret string `env:"SIGNING_SECRET"`
}
type TursoConfig struct {
	PrimaryURL string `env:"PRIMARY_URL"`
	AuthToken  string `env:"AUTH_TOKEN"`
}
type PubSubConfig struct {
	TopicPrefix string `env:"TOPIC_PREFIX" envDefault:"mexicano"`
}
type PlaytomicConfig struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://api.playtomic.io"`
}
type TournamentConfig struct {
	Courts       int `env:"COURTS" envDefault:"1"`
	TargetPoints int `env:"TARGET_POINTS" envDefault:"21"`
}
