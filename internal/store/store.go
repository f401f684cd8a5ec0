package store

import (
	"context"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

// State is everything the poller needs to resume: the last status notified
// per homework and the cursor for the next fetch.
type State struct {
	Seen   homework.SeenState
	Cursor time.Time
}

// Clone returns a State that shares nothing with s.
func (s State) Clone() State {
	return State{Seen: s.Seen.Clone(), Cursor: s.Cursor}
}

// StateStore persists poller state between cycles.
type StateStore interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
	Close() error
}
