package notifier

import (
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

func TestFormatChangeUsesVerdict(t *testing.T) {
	msg := FormatChange(homework.ChangeEvent{ID: "1", Name: "hw_oop.zip", Old: homework.StatusReviewing, New: homework.StatusApproved})

	want := `Review status changed for "hw_oop.zip". The work has been reviewed: the reviewer liked everything. Hooray!`
	if msg.Text != want {
		t.Fatalf("expected %q, got %q", want, msg.Text)
	}
}

func TestFormatChangeFallsBackToID(t *testing.T) {
	msg := FormatChange(homework.ChangeEvent{ID: "42", New: homework.StatusReviewing})
	if !strings.Contains(msg.Text, `"42"`) {
		t.Fatalf("expected id in message, got %q", msg.Text)
	}
}

func TestVerdictCoversStatuses(t *testing.T) {
	for _, s := range []homework.Status{homework.StatusReviewing, homework.StatusApproved, homework.StatusRejected} {
		if v := Verdict(s); v == "" || strings.HasPrefix(v, "New status") {
			t.Fatalf("expected documented verdict for %s, got %q", s, v)
		}
	}
	if v := Verdict("other"); v != "New status: other." {
		t.Fatalf("unexpected fallback verdict %q", v)
	}
}

func TestFormatFailure(t *testing.T) {
	msg := FormatFailure(errors.New("api down"))
	if msg.Text != "Bot failure: api down" {
		t.Fatalf("unexpected failure text %q", msg.Text)
	}
}
