package homework

import "testing"

func TestStatusValues(t *testing.T) {
	expected := map[Status]string{
		StatusReviewing: "reviewing",
		StatusApproved:  "approved",
		StatusRejected:  "rejected",
	}

	for status, want := range expected {
		if string(status) != want {
			t.Fatalf("expected %q got %q", want, status)
		}
		if !status.Known() {
			t.Fatalf("expected %q to be known", status)
		}
	}
}

func TestStatusKnownRejectsUndocumented(t *testing.T) {
	for _, s := range []Status{"", "pending", "APPROVED"} {
		if s.Known() {
			t.Fatalf("expected %q to be unknown", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusReviewing.Terminal() {
		t.Fatalf("reviewing should not be terminal")
	}
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Fatalf("approved and rejected should be terminal")
	}
}
