package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/volunteerhub/webclient/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting volunteerhub client",
		"addr", cfg.HTTP.Addr,
		"upstream", cfg.Upstream.BaseURL,
		"token_store", string(cfg.Session.StoreMode),
		"dev", cfg.IsDev,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := bootstrap.NewSession(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if sess.Redis != nil {
		defer func() {
			if cerr := sess.Redis.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	server, err := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:  &cfg,
		Session: sess,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return bootstrap.ShutdownHTTPServer(context.Background(), server, logger)
}
