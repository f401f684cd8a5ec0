package notifier

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/preston-bernstein/homework-bot/internal/logging"
)

// slackPoster is the part of *slack.Client we use.
type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack posts messages to a single channel with a bot token.
type Slack struct {
	api     slackPoster
	channel string
	logger  *slog.Logger
}

// NewSlack returns a notifier posting to channel.
func NewSlack(token, channel string, logger *slog.Logger) *Slack {
	return newSlack(slack.New(token), channel, logger)
}

func newSlack(api slackPoster, channel string, logger *slog.Logger) *Slack {
	return &Slack{api: api, channel: channel, logger: logger}
}

func (s *Slack) Notify(ctx context.Context, msg Message) error {
	_, ts, err := s.api.PostMessageContext(ctx, s.channel, slack.MsgOptionText(msg.Text, false))
	if err != nil {
		return errors.Wrapf(err, "slack: post to %s", s.channel)
	}
	logging.Debug(logging.FromContext(ctx, s.logger), "message sent", logging.FieldNotifier, s.Name(), "ts", ts)
	return nil
}

func (s *Slack) Name() string { return "slack" }
