package config

// Config holds runtime configuration for the bot.
type Config struct {
	Port                string
	PollInterval        Duration
	Provider            string
	ProviderMinInterval Duration
	RetryAttempts       int
	RetryBackoff        Duration
	StateDBPath         string
	Practicum           PracticumConfig
	Notifier            NotifierConfig
	Metrics             MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// It does not validate; call Validate before using credentials.
func Load() Config {
	return Config{
		Port:                envOrDefault(envPort, defaultPort),
		PollInterval:        durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:            lowerEnvOrDefault(envProvider, defaultProvider),
		ProviderMinInterval: durationEnvOrDefault(envProviderMinInterval, defaultProviderMinInterval),
		RetryAttempts:       intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryBackoff:        durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		StateDBPath:         envOrDefault(envStateDBPath, ""),
		Practicum:           loadPracticum(),
		Notifier:            loadNotifier(),
		Metrics:             loadMetrics(),
	}
}
