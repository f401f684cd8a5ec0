package server

import (
	"log/slog"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/metrics"
	"github.com/preston-bernstein/homework-bot/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.HomeworkProvider {
	base := selectProvider(cfg, f.logger)
	// Retries pass through the limiter too, so a burst of failures cannot hammer the API.
	limited := providers.NewRateLimitedProvider(base, cfg.ProviderMinInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, providerName(cfg.Provider), cfg.RetryAttempts, cfg.RetryBackoff)
}
