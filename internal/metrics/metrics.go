package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type pollerStats struct {
	cycles        int
	failures      int
	changes       int
	notifications int
	deliveryFails int
}

// Recorder captures lightweight, in-memory metrics about provider calls, poll
// cycles and notification delivery, and forwards them to OpenTelemetry when
// instruments are configured. A nil *Recorder is valid and records nothing.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*providerStats
	poller pollerStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordPollerCycle tracks a poll cycle, its outcome and how many changes it detected.
func (r *Recorder) RecordPollerCycle(duration time.Duration, changes int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.poller.cycles++
	if err != nil {
		r.poller.failures++
	}
	r.poller.changes += changes
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPoller(duration, changes, err)
	}
}

// RecordNotification tracks a delivery attempt through the named notifier.
func (r *Recorder) RecordNotification(notifier, kind string, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.poller.notifications++
	if err != nil {
		r.poller.deliveryFails++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordNotification(notifier, kind, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// PollerSnapshot is a copy of the poll-cycle and delivery counters.
type PollerSnapshot struct {
	Cycles           int
	Failures         int
	Changes          int
	Notifications    int
	DeliveryFailures int
}

func (r *Recorder) PollerSnapshot() PollerSnapshot {
	if r == nil {
		return PollerSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return PollerSnapshot{
		Cycles:           r.poller.cycles,
		Failures:         r.poller.failures,
		Changes:          r.poller.changes,
		Notifications:    r.poller.notifications,
		DeliveryFailures: r.poller.deliveryFails,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
