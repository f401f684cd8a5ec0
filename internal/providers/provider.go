package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

// HomeworkProvider defines how upstream homework statuses are fetched and normalized.
// from is the cursor returned by the previous call; a zero value asks for every
// homework the upstream still reports.
type HomeworkProvider interface {
	FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error)
}
