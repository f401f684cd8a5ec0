package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/providers"
)

// Config controls how the client reaches the homework status API.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Client fetches homework statuses and maps them to domain models.
type Client struct {
	baseURL    string
	token      string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		token:      cfg.Token,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchHomeworks retrieves every homework whose status changed since from.
// All failures are returned as *providers.FetchError; a 429 additionally
// carries a *providers.RateLimitError.
func (c *Client) FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error) {
	req, err := c.buildRequest(ctx, from)
	if err != nil {
		return homework.Batch{}, c.fail(0, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return homework.Batch{}, c.fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return homework.Batch{}, c.fail(resp.StatusCode, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "homework api rate limited",
		})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return homework.Batch{}, &providers.FetchError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
			Detail:     strings.TrimSpace(string(body)),
		}
	}

	var payload statusesResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return homework.Batch{}, c.fail(0, fmt.Errorf("%w: %v", providers.ErrMalformedResponse, decodeErr))
	}

	batch, err := mapBatch(payload)
	if err != nil {
		return homework.Batch{}, c.fail(0, err)
	}
	return batch, nil
}

func (c *Client) buildRequest(ctx context.Context, from time.Time) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statusesPath, nil)
	if err != nil {
		return nil, err
	}

	var fromDate int64
	if !from.IsZero() {
		fromDate = from.Unix()
	}
	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "OAuth "+c.token)
	}
	return req, nil
}

func (c *Client) fail(status int, err error) error {
	return &providers.FetchError{Provider: providerName, StatusCode: status, Err: err}
}
