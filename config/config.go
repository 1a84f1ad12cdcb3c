package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library and resolved once at process start; no
// component re-reads the environment per call. See individual domain config
// files for details on available environment variables:
//   - discord.go: Discord application and OAuth configuration
//   - database.go: Database and token store configuration
//   - http.go: HTTP server and cookie configuration
type AppConfig struct {
	// IsDev controls development mode behavior (relaxed cookie security).
	IsDev bool `env:"DEV" envDefault:"false"`

	// Discord application configuration
	Discord DiscordConfig `envPrefix:"DISCORD_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Sync pipeline configuration
	Sync SyncConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Sync.Sanitize()
}
