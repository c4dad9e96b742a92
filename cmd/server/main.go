package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/safepsy/backend/internal/config"
	"github.com/safepsy/backend/internal/handler"
	"github.com/safepsy/backend/internal/iphash"
	"github.com/safepsy/backend/internal/logging"
	"github.com/safepsy/backend/internal/metrics"
	"github.com/safepsy/backend/internal/ratelimit"
	"github.com/safepsy/backend/internal/repository"
	"github.com/safepsy/backend/internal/service"
	"github.com/safepsy/backend/internal/validation"
)

func main() {
	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel)
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("close store", "error", err)
		}
	}()

	limiter, closeLimiter, err := newLimiter(ctx, cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	defer closeLimiter()

	hasher := iphash.New(cfg.IPHashing.Enabled, cfg.IPHashing.Salt)
	if hasher.Enabled() {
		slog.Info("ip hashing enabled with secure salt")
	} else {
		slog.Info("ip hashing disabled (privacy by default)")
	}

	v := validation.New()
	m := metrics.New()
	contactService := service.NewContactService(store.Contacts, v, hasher)
	subscriptionService := service.NewSubscriptionService(store.Subscriptions, v, hasher)

	router := handler.NewRouter(handler.Routes{
		Handler:      handler.New(store, cfg.FrontendURL),
		Contact:      handler.NewContactHandler(contactService, m),
		Subscribe:    handler.NewSubscribeHandler(subscriptionService, m),
		RateLimiter:  handler.NewRateLimiter(limiter, cfg.RateLimit.TrustedProxies, m),
		Metrics:      m,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Database) (*repository.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := repository.OpenSQLite(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLiteStore(db), nil
	default:
		pool, err := repository.NewPool(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return repository.NewPgStore(pool), nil
	}
}

// newLimiter returns the Redis limiter when configured, else the in-memory one.
func newLimiter(ctx context.Context, cfg config.RateLimit) (ratelimit.Limiter, func(), error) {
	if cfg.RedisURL != "" {
		rl, err := ratelimit.NewRedisFromURL(ctx, cfg.RedisURL, cfg.PerMinute)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("rate limiting via redis", "per_minute", cfg.PerMinute)
		return rl, func() { _ = rl.Close() }, nil
	}
	mem := ratelimit.NewMemory(cfg.PerMinute, time.Minute)
	slog.Info("rate limiting in memory", "per_minute", cfg.PerMinute)
	return mem, mem.Stop, nil
}
