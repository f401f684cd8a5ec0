package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 2 * time.Second
	defaultMaxBackoff    = 30 * time.Second
)

// retryingProvider wraps a HomeworkProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        HomeworkProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
	after        func(time.Duration) <-chan time.Time
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
// Delays grow exponentially with jitter; a Retry-After from the upstream takes precedence.
// Every error it returns is a *FetchError.
func NewRetryingProvider(inner HomeworkProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) HomeworkProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = defaultMaxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
		after: time.After,
	}
}

func (r *retryingProvider) FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error) {
	if r.inner == nil {
		return homework.Batch{}, NewFetchError(r.providerName, ErrProviderUnavailable)
	}

	policy := r.newBackOff()
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		batch, err := r.inner.FetchHomeworks(ctx, from)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return batch, nil
		}
		lastErr = err

		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return homework.Batch{}, NewFetchError(r.providerName, ctxErr)
		}
		if attempt == r.maxAttempts || !Retryable(err) {
			break
		}

		delay := r.computeDelay(policy, err)
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)

		select {
		case <-ctx.Done():
			return homework.Batch{}, NewFetchError(r.providerName, ctx.Err())
		case <-r.after(delay):
		}
	}

	args := []any{"error", lastErr}
	if fErr, ok := AsFetchError(lastErr); ok && fErr.Detail != "" {
		args = append(args, "detail", fErr.Detail)
	}
	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed", args...)
	return homework.Batch{}, NewFetchError(r.providerName, lastErr)
}

// computeDelay prefers the upstream Retry-After hint, capped at the max
// backoff, and otherwise takes the next jittered interval from the policy.
func (r *retryingProvider) computeDelay(policy backoff.BackOff, err error) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return min(rl.RetryAfter, defaultMaxBackoff)
	}
	delay := policy.NextBackOff()
	if delay == backoff.Stop {
		return defaultMaxBackoff
	}
	return delay
}
