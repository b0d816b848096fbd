package config

import "strings"

// UpstreamConfig contains the VolunteerHub platform API configuration.
type UpstreamConfig struct {
	// BaseURL is the root of the platform API, e.g. "https://api.volunteerhub.example".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080/api"`

	// TimeoutSec bounds a single API call, including one refresh-and-replay.
	TimeoutSec int `env:"TIMEOUT_SEC" envDefault:"15"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.TimeoutSec <= 0 {
		u.TimeoutSec = 15
	}
}
