package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: local UI server configuration
//   - upstream.go: VolunteerHub API configuration
//   - session.go: token store configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, log level).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// HTTP is the local UI server configuration.
	HTTP HTTPConfig

	// Upstream is the VolunteerHub platform API configuration.
	Upstream UpstreamConfig `envPrefix:"UPSTREAM_"`

	// Session is the token store configuration.
	Session SessionConfig `envPrefix:"SESSION_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Upstream.Sanitize()
	c.Session.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
