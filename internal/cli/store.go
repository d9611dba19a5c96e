package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/kosuke/internal/adapters/file"
	"github.com/aretw0/kosuke/internal/config"
	"github.com/aretw0/kosuke/pkg/adapters/memory"
	"github.com/aretw0/kosuke/pkg/adapters/redis"
	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/persistence/middleware"
	"github.com/aretw0/kosuke/pkg/ports"
)

// errStoreUnreachable marks a backend that did not answer at startup.
var errStoreUnreachable = errors.New("progress store unreachable")

// openStore builds the configured progress store, wrapped in encryption when
// a key is configured. The returned func releases backend connections.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ProgressStore, func() error, error) {
	var store ports.ProgressStore
	closer := func() error { return nil }

	switch cfg.Backend {
	case config.BackendFile:
		store = file.New(cfg.ProgressPath)
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendRedis:
		redis.SetLogger(logger)
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("%w: redis %s: %w", errStoreUnreachable, cfg.Redis.Addr, err)
		}
		store = rs
		closer = rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if cfg.EncryptionKey == "" {
		return store, closer, nil
	}

	enc, err := encryptionConfig(cfg)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return middleware.Chain(store, middleware.NewEncryptionMiddleware(enc)), closer, nil
}

// openWizardStore is openStore for the wizard: an unreachable backend is
// logged, reported as a "connect" persistence failure and replaced by an
// in-memory store for this run.
func openWizardStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (ports.ProgressStore, func() error, error) {
	store, closer, err := openStore(ctx, cfg, logger)
	if !errors.Is(err, errStoreUnreachable) {
		return store, closer, err
	}

	logger.Warn("progress store failure, continuing in memory", "backend", cfg.Backend, "err", err)
	if hooks.OnPersistError != nil {
		hooks.OnPersistError(ctx, &domain.PersistEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPersistError},
			Op:        "connect",
			Err:       err,
		})
	}
	return memory.NewStore(), func() error { return nil }, nil
}

func encryptionConfig(cfg *config.Config) (middleware.EncryptionConfig, error) {
	active, err := middleware.DecodeKey(cfg.EncryptionKey)
	if err != nil {
		return middleware.EncryptionConfig{}, fmt.Errorf("encryption_key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, encoded := range cfg.FallbackKeys {
		key, err := middleware.DecodeKey(encoded)
		if err != nil {
			return middleware.EncryptionConfig{}, fmt.Errorf("fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return enc, nil
}

// redacted wraps store so secrets never leave through read-only surfaces.
func redacted(store ports.ProgressStore, cfg *config.Config) ports.ProgressStore {
	return middleware.Chain(store, middleware.NewRedactionMiddleware(cfg.RedactPatterns))
}
