package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

const defaultMinInterval = 5 * time.Second

// rateLimitedProvider wraps a HomeworkProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     HomeworkProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a HomeworkProvider that allows at most one call per interval.
// The first call goes through immediately; later calls block until the interval elapses.
func NewRateLimitedProvider(next HomeworkProvider, interval time.Duration, logger *slog.Logger) HomeworkProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error) {
	if p == nil || p.next == nil {
		logWithProvider(ctx, p.loggerOrNil(), slog.LevelWarn, "rate-limited", "provider unavailable")
		return homework.Batch{}, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return homework.Batch{}, ctxErr
		}
		return homework.Batch{}, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", "from", from.Unix())
	return p.next.FetchHomeworks(ctx, from)
}

func (p *rateLimitedProvider) loggerOrNil() *slog.Logger {
	if p == nil {
		return nil
	}
	return p.logger
}
