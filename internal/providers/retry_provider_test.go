package providers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error) {
	_ = ctx
	_ = from
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return homework.Batch{}, f.err
		}
		return homework.Batch{}, errors.New("boom")
	}
	return homework.Batch{Homeworks: []homework.Homework{{ID: "ok"}}}, nil
}

func noDelay(rp HomeworkProvider) *retryingProvider {
	r := rp.(*retryingProvider)
	r.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return r
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := noDelay(NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	batch, err := rp.FetchHomeworks(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(batch.Homeworks) != 1 || batch.Homeworks[0].ID != "ok" {
		t.Fatalf("unexpected batch %+v", batch)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := noDelay(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond))

	_, err := rp.FetchHomeworks(context.Background(), time.Time{})
	if err == nil {
		t.Fatal("expected error after retries")
	}
	fErr, ok := AsFetchError(err)
	if !ok || fErr.Provider != "flakey" {
		t.Fatalf("expected FetchError for flakey, got %v", err)
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryPermanentErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &FetchError{StatusCode: 401, Err: errors.New("bad token")}}
	rp := noDelay(NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Millisecond))

	_, err := rp.FetchHomeworks(context.Background(), time.Time{})
	if err == nil {
		t.Fatal("expected error")
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt for 401, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchHomeworks(ctx, time.Time{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if _, ok := AsFetchError(err); !ok {
		t.Fatalf("expected FetchError wrapper, got %T", err)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{Provider: "test", StatusCode: 429}}
	rp := noDelay(NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond))

	batch, err := rp.FetchHomeworks(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(batch.Homeworks) != 1 {
		t.Fatalf("unexpected batch %+v", batch)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls("rl"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors("rl"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryingProviderWaitsForRetryAfter(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 7 * time.Second}}
	rp := NewRetryingProvider(fp, nil, nil, "rl", 2, time.Millisecond).(*retryingProvider)

	var waited []time.Duration
	rp.after = func(d time.Duration) <-chan time.Time {
		waited = append(waited, d)
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	if _, err := rp.FetchHomeworks(context.Background(), time.Time{}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(waited) != 1 || waited[0] != 7*time.Second {
		t.Fatalf("expected a single 7s wait, got %v", waited)
	}
}

func TestRetryingProviderCapsLongRetryAfter(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 6 * time.Hour}}
	rp := NewRetryingProvider(fp, nil, nil, "rl", 2, time.Millisecond).(*retryingProvider)

	var waited []time.Duration
	rp.after = func(d time.Duration) <-chan time.Time {
		waited = append(waited, d)
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	if _, err := rp.FetchHomeworks(context.Background(), time.Time{}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(waited) != 1 || waited[0] != defaultMaxBackoff {
		t.Fatalf("expected a single %s wait, got %v", defaultMaxBackoff, waited)
	}
}

func TestRetryingProviderDelaySelection(t *testing.T) {
	rp := NewRetryingProvider(&flakeyProvider{}, nil, nil, "rl", 2, 50*time.Millisecond).(*retryingProvider)

	tests := []struct {
		name     string
		err      error
		expected time.Duration
	}{
		{
			name:     "rate_limit_uses_retry_after",
			err:      &RateLimitError{RetryAfter: 3 * time.Second},
			expected: 3 * time.Second,
		},
		{
			name:     "long_retry_after_is_capped",
			err:      &RateLimitError{RetryAfter: 6 * time.Hour},
			expected: defaultMaxBackoff,
		},
		{
			name: "generic_error_uses_backoff_with_jitter",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay := rp.computeDelay(rp.newBackOff(), tt.err)
			if tt.expected > 0 {
				if delay != tt.expected {
					t.Fatalf("expected retry-after delay %s, got %s", tt.expected, delay)
				}
				return
			}
			if delay < 25*time.Millisecond || delay > 75*time.Millisecond {
				t.Fatalf("expected jittered delay between 25ms and 75ms, got %s", delay)
			}
		})
	}
}

func TestRetryingProviderStopPolicyFallsBackToMax(t *testing.T) {
	rp := NewRetryingProvider(&flakeyProvider{}, nil, nil, "p", 2, time.Millisecond).(*retryingProvider)
	if got := rp.computeDelay(&backoff.StopBackOff{}, errors.New("x")); got != defaultMaxBackoff {
		t.Fatalf("expected max backoff, got %s", got)
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "", 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	b, ok := rp.newBackOff().(*backoff.ExponentialBackOff)
	if !ok || b.InitialInterval != defaultBackoff {
		t.Fatalf("expected default initial backoff, got %+v", b)
	}

	_, err := rp.FetchHomeworks(context.Background(), time.Time{})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
