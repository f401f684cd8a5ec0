package server

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/metrics"
	"github.com/preston-bernstein/homework-bot/internal/notifier"
	"github.com/preston-bernstein/homework-bot/internal/poller"
	"github.com/preston-bernstein/homework-bot/internal/providers"
	"github.com/preston-bernstein/homework-bot/internal/store"
)

// Components are the collaborators shared by the long-running bot and the
// one-shot poll command.
type Components struct {
	Provider providers.HomeworkProvider
	Notifier notifier.Notifier
	States   store.StateStore
	Poller   *poller.Poller
}

// BuildComponents wires provider, notifier, state store and poller from cfg.
// Callers own the returned Components and must Close them.
func BuildComponents(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Components, error) {
	n, err := selectNotifier(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "build notifier")
	}
	states, err := openStateStore(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}
	provider := newProviderFactory(logger, recorder).build(cfg)

	return &Components{
		Provider: provider,
		Notifier: n,
		States:   states,
		Poller:   poller.New(provider, n, states, logger, recorder, cfg.PollInterval),
	}, nil
}

// Close releases the state store.
func (c *Components) Close() error {
	if c == nil || c.States == nil {
		return nil
	}
	return c.States.Close()
}
