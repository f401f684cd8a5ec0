package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/providers"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func offlineEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("PROVIDER", "fixture")
	t.Setenv("NOTIFIER", "log")
	t.Setenv("STATE_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestPollOncePrintsChangesAsJSON(t *testing.T) {
	envFile := offlineEnv(t)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"poll-once", "--env-file", envFile})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}

	var result PollOnceResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out.String(), err)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("expected both fixture homeworks reported, got %+v", result.Changes)
	}
}

func TestPollOnceHumanOutput(t *testing.T) {
	envFile := offlineEnv(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"poll-once", "--human", "--env-file", envFile})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "new -> reviewing") {
		t.Fatalf("expected human readable transitions, got %q", out.String())
	}
}

func TestMissingCredentialsIsConfigError(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "absent.env")
	t.Setenv("PROVIDER", "practicum")
	t.Setenv("PRACTICUM_TOKEN", "")
	t.Setenv("NOTIFIER", "log")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"poll-once", "--env-file", envFile})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if _, ok := config.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if got := exitCode(err); got != ExitConfigError {
		t.Fatalf("expected exit code %d, got %d", ExitConfigError, got)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitError},
		{&config.ConfigError{Missing: []string{"X"}}, ExitConfigError},
		{fmt.Errorf("poll: %w", &providers.FetchError{Provider: "practicum"}), ExitFetchError},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
