package config

// PracticumConfig controls how we talk to the homework status API.
type PracticumConfig struct {
	BaseURL string
	Token   string
}

func loadPracticum() PracticumConfig {
	return PracticumConfig{
		BaseURL: envOrDefault(envPracticumBaseURL, defaultPracticumBaseURL),
		Token:   envOrDefault(envPracticumToken, ""),
	}
}
