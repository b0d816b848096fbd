package config

import (
	"fmt"
	"strings"
)

// TokenStoreMode selects where the bearer token is persisted between runs.
type TokenStoreMode string

const (
	// TokenStoreFile persists the token in a local file (default).
	TokenStoreFile TokenStoreMode = "file"
	// TokenStoreRedis persists the token in Redis, for ephemeral containers
	// backed by a redis sidecar.
	TokenStoreRedis TokenStoreMode = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreMode.
func (m *TokenStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*m = TokenStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreMode: %q (valid options: file, redis)", v)
	}
}

// RedisConfig contains connection settings for the redis token store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig groups token persistence configuration.
type SessionConfig struct {
	// StoreMode determines which token store backend to use.
	StoreMode TokenStoreMode `env:"STORE" envDefault:"file"`

	// TokenFile is the path of the token file (StoreMode=file).
	// Empty means "<user state dir>/volunteerhub/token".
	TokenFile string `env:"TOKEN_FILE" envDefault:""`

	// Redis configuration (StoreMode=redis).
	Redis RedisConfig `envPrefix:"REDIS_"`

	// RedisKey is the key the token is stored under (StoreMode=redis).
	RedisKey string `env:"REDIS_KEY" envDefault:"volunteerhub:token"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.StoreMode == "" {
		s.StoreMode = TokenStoreFile
	}
	if s.RedisKey == "" {
		s.RedisKey = "volunteerhub:token"
	}
}
