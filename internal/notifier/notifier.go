package notifier

import "context"

// Message is a single chat message.
type Message struct {
	Text string
}

// Notifier delivers messages to a chat.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
	// Name identifies the transport in logs and metrics.
	Name() string
}
