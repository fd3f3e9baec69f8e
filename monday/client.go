package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Default client configuration values.
const (
	DefaultURL             = "https://api.monday.com/v2"
	DefaultMaxRetries      = 4
	DefaultRateLimitWindow = 60 * time.Second
	DefaultPageSize        = 25
)

// complexityCode is the error_code monday.com returns when a request
// exceeds the complexity budget.
const complexityCode = "ComplexityException"

// resetInPattern matches the seconds-until-reset value embedded in
// complexity fault messages, e.g. "... reset in 12.4 seconds".
var resetInPattern = regexp.MustCompile(`(\d+(?:\.\d+)?) seconds`)

// Client talks to the monday.com GraphQL API. It owns the transport, the
// retry/limit governor, and the per-entity services.
type Client struct {
	url             string
	apiKey          string
	headers         map[string]string
	httpClient      *http.Client
	logger          zerolog.Logger
	maxRetries      int
	rateLimitWindow time.Duration
	limiter         *rate.Limiter

	Boards   *BoardsService
	Items    *ItemsService
	Groups   *GroupsService
	Subitems *SubitemsService
	Users    *UsersService
}

// NewClient creates a monday.com API client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("monday API key is required")
	}

	c := &Client{
		url:             DefaultURL,
		apiKey:          apiKey,
		headers:         make(map[string]string),
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		logger:          zerolog.Nop(),
		maxRetries:      DefaultMaxRetries,
		rateLimitWindow: DefaultRateLimitWindow,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Boards = &BoardsService{client: c}
	c.Items = &ItemsService{client: c}
	c.Groups = &GroupsService{client: c}
	c.Subitems = &SubitemsService{client: c}
	c.Users = &UsersService{client: c}

	return c, nil
}

// Exec sends a GraphQL query through the retry/limit governor and returns
// the parsed response envelope.
//
// Complexity faults are retried after the server-specified cooldown,
// mutation-rate faults (status_code 429) and transport failures after the
// configured rate-limit window. Any other fault payload is returned
// immediately as an *APIError. After maxRetries attempts the last fault is
// wrapped in a terminal error; the governor sleeps between attempts only,
// so N attempts sleep N-1 times.
func (c *Client) Exec(ctx context.Context, query string) (map[string]any, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := c.post(ctx, query)
		if err != nil {
			lastErr = &TransportError{Err: err, RetryIn: c.rateLimitWindow}
		} else {
			fault := c.faultFrom(resp)
			if fault == nil {
				return resp, nil
			}
			if _, ok := fault.(retryable); !ok {
				return nil, fault
			}
			lastErr = fault
		}

		if attempt == c.maxRetries {
			break
		}

		delay := lastErr.(retryable).RetryAfter()
		c.logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("Retryable monday API fault, backing off")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	c.logger.Error().Err(lastErr).Int("attempts", c.maxRetries).Msg("Max retries reached")
	return nil, fmt.Errorf("max retries reached after %d attempts: %w", c.maxRetries, lastErr)
}

// post performs a single HTTP round trip. The body is parsed on any HTTP
// status; for this API the payload, not the status code, carries the
// success/failure signal.
func (c *Client) post(ctx context.Context, query string) (map[string]any, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return parsed, nil
}

// faultFrom inspects a parsed response for provider fault markers and maps
// them onto the error taxonomy. A nil return means the envelope is a
// success.
func (c *Client) faultFrom(resp map[string]any) error {
	flagged := false
	for k := range resp {
		if strings.Contains(strings.ToLower(k), "error") {
			flagged = true
			break
		}
	}
	if !flagged {
		return nil
	}

	if code, ok := resp["error_code"].(string); ok && code == complexityCode {
		msg, _ := resp["error_message"].(string)
		retryIn, ok := parseResetIn(msg)
		if !ok {
			c.logger.Error().Interface("response", resp).Msg("Failed to parse complexity reset time")
			return &APIError{Message: "unparseable complexity fault: " + msg, Response: resp}
		}
		return &ComplexityLimitError{Message: msg, RetryIn: retryIn}
	}

	if code, ok := statusCode(resp); ok && code == http.StatusTooManyRequests {
		return &MutationLimitError{RetryIn: c.rateLimitWindow}
	}

	return &APIError{Message: "API request failed", Response: resp}
}

// parseResetIn extracts the seconds-until-reset value from a complexity
// fault message, rounded up to the next whole second.
func parseResetIn(message string) (time.Duration, bool) {
	match := resetInPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(math.Ceil(seconds)) * time.Second, true
}

// statusCode reads the status_code key, tolerating the number/string
// representations the API has been observed to use.
func statusCode(resp map[string]any) (int, bool) {
	switch v := resp["status_code"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		code, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return code, true
	}
	return 0, false
}

// checkData validates a successful envelope and returns its data payload.
func checkData(resp map[string]any) (map[string]any, error) {
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return nil, &APIError{Message: "unexpected API response: missing data", Response: resp}
	}
	return data, nil
}

// listOf returns the named list from a data payload as item records,
// skipping any non-object entries.
func listOf(data map[string]any, key string) []map[string]any {
	raw, _ := data[key].([]any)
	records := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records
}

// objectOf returns the named object from a data payload.
func objectOf(data map[string]any, key string) (map[string]any, error) {
	obj, ok := data[key].(map[string]any)
	if !ok {
		return nil, &APIError{Message: fmt.Sprintf("unexpected API response: missing %s", key), Response: data}
	}
	return obj, nil
}
