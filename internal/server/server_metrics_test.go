package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/metrics"
	"github.com/preston-bernstein/homework-bot/internal/testutil"
)

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics server on configured port, got %s", srv.Addr())
	}
}

func TestBuildMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, nil)
	if rec == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
}

func TestBuildMetricsDisabledSkipsServer(t *testing.T) {
	rec, srv, _ := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: false}}, nil, nil)
	if rec == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestBuildMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()

	got, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, rec)
	if got != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected injected recorder to skip exporter setup")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected injected shutdown to succeed, got %v", err)
	}
}

func TestHTTPServerReadyFollowsPollerOutage(t *testing.T) {
	plr := &testutil.StubPoller{StatusVal: testutil.OutagePollerStatus(3, "practicum: fetch failed (status=503)", time.Now())}
	srv := buildHTTPServer(config.Config{Port: "0"}, nil, metrics.NewRecorder(), plr)

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	plr.StatusVal = testutil.HealthyPollerStatus(5, time.Now())
	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestHTTPServerWrapsRouterWithMiddleware(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := buildHTTPServer(config.Config{Port: "0"}, nil, rec, &testutil.StubPoller{})

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected middleware to set request id")
	}
}
