package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/volunteerhub/webclient/config"
	redisadapter "github.com/volunteerhub/webclient/internal/adapters/redis"
	"github.com/volunteerhub/webclient/internal/adapters/tokenfile"
	"github.com/volunteerhub/webclient/internal/session"
	"github.com/volunteerhub/webclient/internal/upstream"
)

// SessionDeps is the wired session stack: the controller, the platform
// client driving it, and the redis connection to close on shutdown (nil for
// the file store).
type SessionDeps struct {
	Controller *session.Controller
	Client     *upstream.Client
	Redis      goredis.UniversalClient
}

// NewSession wires the token store, the session controller, and the platform
// client, then starts bootstrap in the background. Navigation arriving before
// the restore settles sees the pending state rather than blocking startup.
func NewSession(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*SessionDeps, error) {
	store, redisClient, err := newTokenStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	controller := session.NewController(store, logger)
	client := upstream.NewClient(upstream.Options{
		BaseURL: cfg.Upstream.BaseURL,
		Session: controller,
		Timeout: time.Duration(cfg.Upstream.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	controller.SetAPI(client)

	go controller.Bootstrap(ctx)

	return &SessionDeps{Controller: controller, Client: client, Redis: redisClient}, nil
}

func newTokenStore(cfg *config.AppConfig, logger *slog.Logger) (session.TokenStore, goredis.UniversalClient, error) {
	switch cfg.Session.StoreMode {
	case config.TokenStoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		logger.Info("token store", "mode", "redis", "addr", cfg.Session.Redis.Addr)
		return redisadapter.NewTokenStoreWithKey(client, cfg.Session.RedisKey), client, nil
	default:
		store, err := tokenfile.New(cfg.Session.TokenFile)
		if err != nil {
			return nil, nil, fmt.Errorf("token file store: %w", err)
		}
		logger.Info("token store", "mode", "file", "path", store.Path())
		return store, nil, nil
	}
}
