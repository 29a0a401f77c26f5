package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ErrRetryBudgetExceeded signals that the Slack API kept rate-limiting us past
// the configured retry budget. The export is safe to re-run later: already
// loaded channels are skipped on the next invocation.
var ErrRetryBudgetExceeded = errors.New("rate limit retry budget exceeded")

// APIError represents a fatal Slack API failure: either a non-200 non-429
// HTTP status, or a transport-level success whose payload carries "ok": false.
type APIError struct {
	Method     string // Slack Web API method, e.g. "conversations.history"
	StatusCode int
	Status     string
	Payload    string // body echo for application-level failures
}

func (e *APIError) Error() string {
	if e.Payload != "" {
		return fmt.Sprintf("slack api %s returned an error payload: %s", e.Method, e.Payload)
	}
	return fmt.Sprintf("slack api %s failed: %s", e.Method, e.Status)
}

// IsAPIError checks if an error is a fatal Slack API error
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MalformedResponseError signals a page response that is missing the field the
// paginator was told to combine on. This is a response-shape contract
// violation; aborting loudly beats silently exporting partial data.
type MalformedResponseError struct {
	Method     string
	CombineKey string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("slack api %s response is missing expected field %q", e.Method, e.CombineKey)
}

// IsUniqueViolation reports whether err is a primary-key/unique-constraint
// violation from either supported driver. On a re-run this is the expected
// "row already exists" signal, not a failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// modernc.org/sqlite surfaces constraint failures as plain error strings
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE")
}
