package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ConfigError lists every required setting that is missing or unusable.
// It is fatal at startup.
type ConfigError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid values: "+strings.Join(e.Invalid, ", "))
	}
	return "config: " + strings.Join(parts, "; ")
}

// AsConfigError attempts to unwrap an error into a ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var cErr *ConfigError
	if errors.As(err, &cErr) {
		return cErr, true
	}
	return nil, false
}

// Validate checks that the selected provider and notifier have their
// credentials. It returns nil or a *ConfigError.
func (c Config) Validate() error {
	cErr := &ConfigError{}

	switch c.Provider {
	case ProviderPracticum:
		if c.Practicum.Token == "" {
			cErr.Missing = append(cErr.Missing, envPracticumToken)
		}
	case ProviderFixture:
	default:
		cErr.Invalid = append(cErr.Invalid, fmt.Sprintf("%s=%q", envProvider, c.Provider))
	}

	switch c.Notifier.Kind {
	case NotifierTelegram:
		if c.Notifier.TelegramToken == "" {
			cErr.Missing = append(cErr.Missing, envTelegramToken)
		}
		if c.Notifier.TelegramChatID == "" {
			cErr.Missing = append(cErr.Missing, envTelegramChatID)
		} else if _, err := c.TelegramChatID(); err != nil {
			cErr.Invalid = append(cErr.Invalid, fmt.Sprintf("%s=%q", envTelegramChatID, c.Notifier.TelegramChatID))
		}
	case NotifierSlack:
		if c.Notifier.SlackToken == "" {
			cErr.Missing = append(cErr.Missing, envSlackToken)
		}
		if c.Notifier.SlackChannel == "" {
			cErr.Missing = append(cErr.Missing, envSlackChannel)
		}
	case NotifierLog:
	default:
		cErr.Invalid = append(cErr.Invalid, fmt.Sprintf("%s=%q", envNotifier, c.Notifier.Kind))
	}

	if len(cErr.Missing) == 0 && len(cErr.Invalid) == 0 {
		return nil
	}
	return cErr
}

// TelegramChatID parses the configured chat id.
func (c Config) TelegramChatID() (int64, error) {
	return strconv.ParseInt(c.Notifier.TelegramChatID, 10, 64)
}
