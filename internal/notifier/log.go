package notifier

import (
	"context"
	"log/slog"
)

// Log writes messages to the structured log instead of a chat. Used for local
// runs without messenger credentials.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, msg Message) error {
	l.logger.InfoContext(ctx, "notification", "text", msg.Text)
	return nil
}

func (l *Log) Name() string { return "log" }
