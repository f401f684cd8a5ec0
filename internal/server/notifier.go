package server

import (
	"log/slog"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/notifier"
)

// telegramFactory remains a var so tests can avoid the Bot API handshake.
var telegramFactory = func(token string, chatID int64, logger *slog.Logger) (notifier.Notifier, error) {
	t, err := notifier.NewTelegram(token, chatID, logger)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func selectNotifier(cfg config.Config, logger *slog.Logger) (notifier.Notifier, error) {
	switch cfg.Notifier.Kind {
	case config.NotifierTelegram:
		chatID, err := cfg.TelegramChatID()
		if err != nil {
			return nil, &config.ConfigError{Invalid: []string{"TELEGRAM_CHAT_ID"}}
		}
		return telegramFactory(cfg.Notifier.TelegramToken, chatID, logger)
	case config.NotifierSlack:
		return notifier.NewSlack(cfg.Notifier.SlackToken, cfg.Notifier.SlackChannel, logger), nil
	default:
		return notifier.NewLog(logger), nil
	}
}
