package config

import "time"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":3000"`

	// CookieDomain is the domain for the state cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CookieSecret signs the clientState cookie (HMAC-SHA256). Must be set in
	// production; the default exists only so local dev starts without setup.
	CookieSecret string `env:"COOKIE_SECRET" envDefault:"dev-secret"`

	// StateTTL bounds how long an authorization attempt's state cookie lives.
	StateTTL time.Duration `env:"OAUTH_STATE_TTL" envDefault:"5m"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.StateTTL <= 0 {
		h.StateTTL = 5 * time.Minute
	}
}
