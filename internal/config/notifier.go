package config

// NotifierConfig selects the messaging transport and its credentials.
type NotifierConfig struct {
	Kind           string
	TelegramToken  string
	TelegramChatID string
	SlackToken     string
	SlackChannel   string
}

func loadNotifier() NotifierConfig {
	return NotifierConfig{
		Kind:           lowerEnvOrDefault(envNotifier, defaultNotifier),
		TelegramToken:  envOrDefault(envTelegramToken, ""),
		TelegramChatID: envOrDefault(envTelegramChatID, ""),
		SlackToken:     envOrDefault(envSlackToken, ""),
		SlackChannel:   envOrDefault(envSlackChannel, ""),
	}
}
