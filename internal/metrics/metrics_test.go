package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("practicum", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("practicum", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("practicum"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("practicum"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("practicum")
	if snap.Calls != 2 || snap.Errors != 1 || snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("practicum", 5*time.Second)
	rec.RecordRateLimit("practicum", 0)

	if got := rec.RateLimitHits("practicum"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("practicum"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksPollerAndNotifications(t *testing.T) {
	rec := NewRecorder()
	rec.RecordPollerCycle(time.Millisecond, 2, nil)
	rec.RecordPollerCycle(time.Millisecond, 0, errors.New("fetch"))
	rec.RecordNotification("telegram", "change", nil)
	rec.RecordNotification("telegram", "failure", errors.New("down"))

	got := rec.PollerSnapshot()
	want := PollerSnapshot{Cycles: 2, Failures: 1, Changes: 2, Notifications: 2, DeliveryFailures: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordRateLimit("p", time.Second)
	rec.RecordPollerCycle(time.Millisecond, 1, nil)
	rec.RecordNotification("n", "change", nil)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if rec.ProviderCalls("p") != 0 || rec.PollerSnapshot() != (PollerSnapshot{}) {
		t.Fatalf("expected zero values from nil recorder")
	}
}
