package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreModeUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    TokenStoreMode
		wantErr bool
	}{
		{in: "file", want: TokenStoreFile},
		{in: "redis", want: TokenStoreRedis},
		{in: "REDIS", want: TokenStoreRedis},
		{in: "postgres", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		var m TokenStoreMode
		err := m.UnmarshalText([]byte(tt.in))
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, m)
	}
}

func TestSanitizeAppliesGuardrails(t *testing.T) {
	cfg := AppConfig{
		HTTP:     HTTPConfig{Addr: "", ReadTimeoutSec: -1, WriteTimeoutSec: 0},
		Upstream: UpstreamConfig{BaseURL: " http://localhost:8080/api/ ", TimeoutSec: 0},
	}
	cfg.Sanitize()

	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.Addr)
	assert.Equal(t, 30, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, 30, cfg.HTTP.WriteTimeoutSec)
	assert.Equal(t, "http://localhost:8080/api", cfg.Upstream.BaseURL, "trailing slash and whitespace trimmed")
	assert.Equal(t, 15, cfg.Upstream.TimeoutSec)
	assert.Equal(t, TokenStoreFile, cfg.Session.StoreMode)
	assert.Equal(t, "volunteerhub:token", cfg.Session.RedisKey)
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
