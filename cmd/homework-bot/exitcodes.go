package main

import (
	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/providers"
)

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // Runtime failure
	ExitConfigError = 2 // Missing or invalid configuration
	ExitFetchError  = 3 // Homework API unreachable or returned garbage
)

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if _, ok := config.AsConfigError(err); ok {
		return ExitConfigError
	}
	if _, ok := providers.AsFetchError(err); ok {
		return ExitFetchError
	}
	return ExitError
}
