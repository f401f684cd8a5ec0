package notifier

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/preston-bernstein/homework-bot/internal/logging"
)

// telegramSender is the part of *tgbotapi.BotAPI we use.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends messages to a single chat through the Bot API.
type Telegram struct {
	api    telegramSender
	chatID int64
	logger *slog.Logger
}

// NewTelegram authenticates the bot token and returns a notifier bound to chatID.
func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: authorize bot")
	}
	return newTelegram(api, chatID, logger), nil
}

func newTelegram(api telegramSender, chatID int64, logger *slog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, logger: logger}
}

// Notify sends msg to the configured chat. The Bot API client has no context
// support, so cancellation is only honored before the request starts.
func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, msg.Text)); err != nil {
		return errors.Wrapf(err, "telegram: send to chat %d", t.chatID)
	}
	logging.Debug(logging.FromContext(ctx, t.logger), "message sent", logging.FieldNotifier, t.Name())
	return nil
}

func (t *Telegram) Name() string { return "telegram" }
