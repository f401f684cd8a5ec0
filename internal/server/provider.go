package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/logging"
	"github.com/preston-bernstein/homework-bot/internal/providers"
	"github.com/preston-bernstein/homework-bot/internal/providers/fixture"
	"github.com/preston-bernstein/homework-bot/internal/providers/practicum"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.HomeworkProvider {
	switch cfg.Provider {
	case config.ProviderPracticum:
		return practicum.NewClient(practicum.Config{
			BaseURL: cfg.Practicum.BaseURL,
			Token:   cfg.Practicum.Token,
		})
	case config.ProviderFixture, "":
		return fixture.New()
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

// providerName keeps naming consistent across metrics and logs.
func providerName(raw string) string {
	if raw = strings.ToLower(strings.TrimSpace(raw)); raw != "" {
		return raw
	}
	return config.ProviderFixture
}
