package config

import "time"

const (
	envPort                = "PORT"
	envPollInterval        = "POLL_INTERVAL"
	envProvider            = "PROVIDER"
	envProviderMinInterval = "PROVIDER_MIN_INTERVAL"
	envRetryAttempts       = "RETRY_ATTEMPTS"
	envRetryBackoff        = "RETRY_BACKOFF"
	envStateDBPath         = "STATE_DB_PATH"
	envPracticumToken      = "PRACTICUM_TOKEN"
	envPracticumBaseURL    = "PRACTICUM_BASE_URL"
	envNotifier            = "NOTIFIER"
	envTelegramToken       = "TELEGRAM_TOKEN"
	envTelegramChatID      = "TELEGRAM_CHAT_ID"
	envSlackToken          = "SLACK_BOT_TOKEN"
	envSlackChannel        = "SLACK_CHANNEL_ID"
	envMetricsPort         = "METRICS_PORT"
	envMetricsOn           = "METRICS_ENABLED"
	envOtelEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService         = "OTEL_SERVICE_NAME"
	envOtelInsecure        = "OTEL_EXPORTER_OTLP_INSECURE"

	ProviderPracticum = "practicum"
	ProviderFixture   = "fixture"

	NotifierTelegram = "telegram"
	NotifierSlack    = "slack"
	NotifierLog      = "log"

	defaultPort     = "8080"
	defaultProvider = ProviderPracticum
	defaultNotifier = NotifierTelegram
	// Reviews take hours; polling every ten minutes keeps well inside the API quota.
	defaultPollInterval        = 10 * Duration(time.Minute)
	defaultProviderMinInterval = 5 * Duration(time.Second)
	defaultRetryAttempts       = 3
	defaultRetryBackoff        = 2 * Duration(time.Second)
	defaultPracticumBaseURL    = "https://practicum.yandex.ru/api/user_api"
	defaultMetricsPort         = "9090"
)
