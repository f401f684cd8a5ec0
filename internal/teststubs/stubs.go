package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/notifier"
)

// StubResponse is one scripted answer from StubProvider.
type StubResponse struct {
	Batch homework.Batch
	Err   error
}

// StubProvider is a test double for providers.HomeworkProvider. Scripted
// Responses are consumed in order; afterwards Batch and Err are returned.
type StubProvider struct {
	Batch     homework.Batch
	Err       error
	Responses []StubResponse
	Calls     atomic.Int32
	Notify    chan struct{}

	mu    sync.Mutex
	froms []time.Time
}

// FetchHomeworks returns the next scripted response while tracking calls.
func (s *StubProvider) FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error) {
	_ = ctx
	s.mu.Lock()
	s.froms = append(s.froms, from)
	resp := StubResponse{Batch: s.Batch, Err: s.Err}
	if len(s.Responses) > 0 {
		resp = s.Responses[0]
		s.Responses = s.Responses[1:]
	}
	s.mu.Unlock()

	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	return resp.Batch, resp.Err
}

// Froms returns the cursors passed to each call.
func (s *StubProvider) Froms() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.froms...)
}

// StubNotifier is a test double for notifier.Notifier.
type StubNotifier struct {
	Err error

	mu   sync.Mutex
	sent []notifier.Message
}

// Notify records the message and returns the configured error.
func (n *StubNotifier) Notify(ctx context.Context, msg notifier.Message) error {
	_ = ctx
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.Err
}

// Name identifies the stub in logs and metrics.
func (n *StubNotifier) Name() string { return "stub" }

// Sent returns a copy of every message passed to Notify.
func (n *StubNotifier) Sent() []notifier.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Message(nil), n.sent...)
}
