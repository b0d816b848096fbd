// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetupTestRedis creates a Redis client for testing. Tests are skipped when
// no Redis is reachable; set REDIS_ADDR to point at a non-default instance.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// WriteEnvelope writes a platform-style response envelope.
func WriteEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}
