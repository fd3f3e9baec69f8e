package monday

import (
	"fmt"
	"time"
)

// ComplexityLimitError is returned when a request exceeds the monday.com
// complexity budget. The API embeds the time until the budget resets in the
// error message; RetryIn carries that value rounded up to whole seconds.
type ComplexityLimitError struct {
	Message string
	RetryIn time.Duration
}

// Error implements the error interface
func (e *ComplexityLimitError) Error() string {
	return fmt.Sprintf("complexity limit exceeded, retrying after %s: %s", e.RetryIn, e.Message)
}

// RetryAfter returns how long to wait before the next attempt.
func (e *ComplexityLimitError) RetryAfter() time.Duration {
	return e.RetryIn
}

// MutationLimitError is returned when the API reports status_code 429. The
// API does not echo a reset time for this fault class, so RetryIn is the
// client-configured rate-limit window.
type MutationLimitError struct {
	RetryIn time.Duration
}

// Error implements the error interface
func (e *MutationLimitError) Error() string {
	return fmt.Sprintf("mutation rate limit exceeded, retrying after %s", e.RetryIn)
}

// RetryAfter returns how long to wait before the next attempt.
func (e *MutationLimitError) RetryAfter() time.Duration {
	return e.RetryIn
}

// TransportError wraps a network-level failure (DNS, connection reset,
// timeout, unparseable body). It is retried with the rate-limit window
// cooldown since no server-specified value is available.
type TransportError struct {
	Err     error
	RetryIn time.Duration
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("monday API request failed: %v", e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RetryAfter returns how long to wait before the next attempt.
func (e *TransportError) RetryAfter() time.Duration {
	return e.RetryIn
}

// APIError is returned for any fault payload the client does not recognize
// as retryable. Response holds the raw provider JSON so callers can branch
// on it.
type APIError struct {
	Message  string
	Response map[string]any
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("monday API error: %s", e.Message)
}

// QueryFormatError indicates a query was built with a shape the client
// cannot paginate, e.g. an items_page selection without a cursor field.
type QueryFormatError struct {
	Message string
}

// Error implements the error interface
func (e *QueryFormatError) Error() string {
	return e.Message
}

// retryable is satisfied by fault types the governor may retry.
type retryable interface {
	RetryAfter() time.Duration
}
