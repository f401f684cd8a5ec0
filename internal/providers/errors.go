package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no upstream is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrMalformedResponse marks an upstream payload missing expected keys or types.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrUnknownStatus marks a homework status the upstream does not document.
	ErrUnknownStatus = errors.New("undocumented homework status")
)

// FetchError is the single failure type surfaced to the poller. It wraps
// transport, HTTP and decoding failures alike.
type FetchError struct {
	Provider   string
	StatusCode int
	Err        error
	// Detail holds a snippet of the upstream body. It is logged, never rendered.
	Detail string
}

func (e *FetchError) Error() string {
	msg := "fetch failed"
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fErr *FetchError
	if errors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}

// NewFetchError wraps err for the named provider unless it already is a FetchError.
func NewFetchError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if fErr, ok := AsFetchError(err); ok {
		return fErr
	}
	fErr := &FetchError{Provider: provider, Err: err}
	if rl, ok := AsRateLimitError(err); ok {
		fErr.StatusCode = rl.StatusCode
	}
	return fErr
}

// Failure kinds group errors that belong to the same outage.
const (
	FailureUnavailable   = "unavailable"
	FailureTimeout       = "timeout"
	FailureRateLimited   = "rate_limited"
	FailureMalformed     = "malformed"
	FailureUnknownStatus = "unknown_status"
	FailureServer        = "http_5xx"
	FailureClient        = "http_4xx"
	FailureTransport     = "transport"
	FailureUnknown       = "unknown"
)

// FailureKind classifies err into a stable kind. Status codes within a class
// and upstream bodies do not affect the result.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProviderUnavailable):
		return FailureUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return FailureTimeout
	case errors.Is(err, ErrMalformedResponse):
		return FailureMalformed
	case errors.Is(err, ErrUnknownStatus):
		return FailureUnknownStatus
	}
	if _, ok := AsRateLimitError(err); ok {
		return FailureRateLimited
	}
	fErr, ok := AsFetchError(err)
	if !ok {
		return FailureUnknown
	}
	switch code := fErr.StatusCode; {
	case code == http.StatusTooManyRequests:
		return FailureRateLimited
	case code >= http.StatusInternalServerError:
		return FailureServer
	case code >= http.StatusBadRequest:
		return FailureClient
	case code == 0:
		return FailureTransport
	default:
		return FailureUnknown
	}
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Retryable reports whether another attempt could succeed. Client errors other
// than 429 and payloads we cannot interpret will fail the same way again.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrUnknownStatus) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if fErr, ok := AsFetchError(err); ok {
		code := fErr.StatusCode
		if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
			return false
		}
	}
	return true
}
