// Command adminauthd runs the administrative authentication service: Postgres
// credential store, Redis session registry, and a minimal HTTP surface over
// the adminauth core.
//
// Configuration is taken from the environment:
//
//	ADMINAUTH_HTTP_ADDR            listen address (default :8080)
//	ADMINAUTH_DATABASE_DSN         Postgres DSN
//	ADMINAUTH_REDIS_ADDR           Redis address (default 127.0.0.1:6379)
//	ADMINAUTH_ACCESS_SECRET        access token signing secret
//	ADMINAUTH_REFRESH_SECRET       refresh token signing secret
//	ADMINAUTH_TOKEN_ISSUER         issuer for both variants (default adminauthd)
//	ADMINAUTH_TOKEN_AUDIENCE       audience for both variants (default admin-panel)
//	ADMINAUTH_ACCESS_TTL           access token lifetime (default 15m)
//	ADMINAUTH_REFRESH_TTL          refresh token lifetime (default 168h)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adminkit/adminauth"
	"github.com/adminkit/adminauth/gate"
	"github.com/adminkit/adminauth/userstore"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "adminauthd").Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
}

func run(logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := adminauth.DefaultConfig()
	cfg.AccessToken.Secret = []byte(os.Getenv("ADMINAUTH_ACCESS_SECRET"))
	cfg.RefreshToken.Secret = []byte(os.Getenv("ADMINAUTH_REFRESH_SECRET"))
	cfg.AccessToken.Issuer = envOr("ADMINAUTH_TOKEN_ISSUER", "adminauthd")
	cfg.RefreshToken.Issuer = cfg.AccessToken.Issuer
	cfg.AccessToken.Audience = envOr("ADMINAUTH_TOKEN_AUDIENCE", "admin-panel")
	cfg.RefreshToken.Audience = cfg.AccessToken.Audience
	if ttl, err := envDuration("ADMINAUTH_ACCESS_TTL"); err != nil {
		return err
	} else if ttl > 0 {
		cfg.AccessToken.TTL = ttl
	}
	if ttl, err := envDuration("ADMINAUTH_REFRESH_TTL"); err != nil {
		return err
	} else if ttl > 0 {
		cfg.RefreshToken.TTL = ttl
	}

	users, err := userstore.Open(ctx, os.Getenv("ADMINAUTH_DATABASE_DSN"))
	if err != nil {
		return err
	}
	defer users.Close()
	logger.Info().Msg("credential store ready")

	rdb := redis.NewClient(&redis.Options{Addr: envOr("ADMINAUTH_REDIS_ADDR", "127.0.0.1:6379")})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	logger.Info().Msg("session registry ready")

	service, err := adminauth.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(users).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              envOr("ADMINAUTH_HTTP_ADDR", ":8080"),
		Handler:           newRouter(service, gate.ForService(service), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.New(key + ": invalid duration")
	}
	return d, nil
}
