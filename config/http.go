package config

// HTTPConfig contains the local UI server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the UI server to.
	Addr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:3000"`

	// BaseURL is the base URL the browser reaches the client at.
	// Used when generating absolute redirects.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://127.0.0.1:3000"`

	// ReadTimeoutSec and WriteTimeoutSec bound request handling.
	ReadTimeoutSec  int `env:"HTTP_READ_TIMEOUT_SEC"  envDefault:"30"`
	WriteTimeoutSec int `env:"HTTP_WRITE_TIMEOUT_SEC" envDefault:"30"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = "127.0.0.1:3000"
	}
	if h.ReadTimeoutSec <= 0 {
		h.ReadTimeoutSec = 30
	}
	if h.WriteTimeoutSec <= 0 {
		h.WriteTimeoutSec = 30
	}
}
