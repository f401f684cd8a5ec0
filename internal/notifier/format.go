package notifier

import (
	"fmt"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

var verdicts = map[homework.Status]string{
	homework.StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	homework.StatusReviewing: "The work has been taken for review.",
	homework.StatusRejected:  "The work has been reviewed: the reviewer has comments.",
}

// Verdict returns the human readable outcome for a status.
func Verdict(s homework.Status) string {
	if v, ok := verdicts[s]; ok {
		return v
	}
	return fmt.Sprintf("New status: %s.", s)
}

// FormatChange renders a status change for the chat.
func FormatChange(ev homework.ChangeEvent) Message {
	name := ev.Name
	if name == "" {
		name = ev.ID
	}
	return Message{Text: fmt.Sprintf("Review status changed for %q. %s", name, Verdict(ev.New))}
}

// FormatFailure renders a bot failure for the chat.
func FormatFailure(err error) Message {
	return Message{Text: fmt.Sprintf("Bot failure: %v", err)}
}
