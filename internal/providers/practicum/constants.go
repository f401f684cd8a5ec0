package practicum

import "time"

const (
	providerName       = "practicum"
	defaultBaseURL     = "https://practicum.yandex.ru/api/user_api"
	statusesPath       = "/homework_statuses/"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
