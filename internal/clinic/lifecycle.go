package clinic

import (
	"context"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"clinicore/internal/blob"
	"clinicore/internal/config"
	"clinicore/internal/infra/persistence"
	"clinicore/internal/metrics"
	"clinicore/internal/seed"
)

var (
	defaultMu  sync.Mutex
	defaultSvc *Service

	// Instruments register on the default registry once per process; re-opens
	// after ResetDefault reuse them.
	metricsOnce sync.Once
	defaultMet  *metrics.Metrics
)

// Open builds a fully wired service from configuration: storage driver,
// image blob backend, seeding, logging, metrics. Opening runs any pending
// migrations as part of store load.
func Open(ctx context.Context, cfg *config.Config) (*Service, error) {
	logger := newLogger(cfg.LogLevel)

	st, err := persistence.Open(ctx, cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	blobs, err := blob.Open(ctx, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	svc := New(Options{
		Store:   st,
		Blobs:   blobs,
		Logger:  logger,
		Metrics: defaultMetrics(),
	})
	if err := seed.Run(ctx, st, logger); err != nil {
		_ = st.Close()
		return nil, err
	}
	logger.Info().Str("storage", cfg.StorageDriver).Str("blob", cfg.BlobDriver).Msg("record store ready")
	return svc, nil
}

// Default returns the process-wide service, constructing it on first call
// from environment configuration. Concurrent first calls block until the one
// initialization finishes and share its result; a failed initialization
// leaves the guard clear so a later call can retry.
func Default(ctx context.Context) (*Service, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSvc != nil {
		return defaultSvc, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	svc, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defaultSvc = svc
	return defaultSvc, nil
}

// ResetDefault tears down the singleton so the next Default call
// reinitializes. Intended for tests.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSvc != nil {
		_ = defaultSvc.Close()
		defaultSvc = nil
	}
}

func defaultMetrics() *metrics.Metrics {
	metricsOnce.Do(func() {
		defaultMet = metrics.New(prometheus.DefaultRegisterer)
	})
	return defaultMet
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}
