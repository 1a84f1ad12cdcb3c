package config

import "errors"

// DiscordConfig contains the Discord application credentials and endpoints.
// CLIENT_ID, CLIENT_SECRET, and REDIRECT_URI come from the application's
// OAuth2 settings in the developer portal; BOT_TOKEN is only needed for
// administrative identity lookups and metadata schema registration.
type DiscordConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI" envDefault:"http://localhost:3000/discord-oauth-callback"`
	BotToken     string `env:"BOT_TOKEN"`

	// APIBaseURL is the Discord REST API base. Overridable for tests.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://discord.com/api/v10"`

	// AuthorizeURL is the user-facing OAuth2 authorization endpoint.
	AuthorizeURL string `env:"AUTHORIZE_URL" envDefault:"https://discord.com/api/oauth2/authorize"`

	// PlatformName is the platform_name asserted in role connection pushes.
	PlatformName string `env:"PLATFORM_NAME" envDefault:"BlitzForge Studios"`
}

// Validate checks that the OAuth credentials required by the web flow are set.
func (d *DiscordConfig) Validate() error {
	if d.ClientID == "" {
		return errors.New("DISCORD_CLIENT_ID is required")
	}
	if d.ClientSecret == "" {
		return errors.New("DISCORD_CLIENT_SECRET is required")
	}
	if d.RedirectURI == "" {
		return errors.New("DISCORD_REDIRECT_URI is required")
	}
	return nil
}
