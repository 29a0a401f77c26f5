package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"slackvault/core"
	"slackvault/core/log"
)

// DefaultBaseURL is the Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

const (
	// defaultRetryMargin is added on top of the server's Retry-After hint.
	defaultRetryMargin = 10 * time.Second
	// defaultRetryLimit bounds consecutive rate-limited attempts.
	defaultRetryLimit = 5
)

// pageLimit is the page size requested from every paginated endpoint.
const pageLimit = "200"

// Client issues authenticated GET requests against the Slack Web API,
// honoring rate-limit signaling with bounded retries. All calls are
// synchronous and blocking; backoff sleeps block the calling goroutine.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	teamID      string
	retryMargin time.Duration
	retryLimit  int
	sleep       func(time.Duration)
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate API root. Used by tests to
// target an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTeamID scopes users.list and conversations.list to a single workspace
// of an org-wide token.
func WithTeamID(teamID string) Option {
	return func(c *Client) { c.teamID = teamID }
}

// WithRetryMargin overrides the seconds added on top of Retry-After hints.
func WithRetryMargin(margin time.Duration) Option {
	return func(c *Client) { c.retryMargin = margin }
}

// WithRetryLimit overrides the consecutive rate-limit attempt budget.
func WithRetryLimit(limit int) Option {
	return func(c *Client) { c.retryLimit = limit }
}

// WithSleep replaces the backoff sleep function. Used by tests to record
// sleeps instead of waiting them out.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		baseURL:     DefaultBaseURL,
		token:       token,
		retryMargin: defaultRetryMargin,
		retryLimit:  defaultRetryLimit,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiEnvelope is the part of every Slack response the client itself
// interprets: the application-level ok flag and the pagination cursor.
type apiEnvelope struct {
	OK               bool   `json:"ok"`
	Error            string `json:"error"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

// Response is one successfully fetched, decoded API page.
type Response struct {
	// NextCursor is the continuation cursor, empty when pagination is done.
	NextCursor string

	fields map[string]json.RawMessage
}

// Field returns the raw JSON of a top-level payload field.
func (r *Response) Field(key string) (json.RawMessage, bool) {
	raw, ok := r.fields[key]
	return raw, ok
}

// get fetches a single API page. Rate-limit responses are retried with the
// server-specified backoff plus a fixed margin, up to the retry budget; any
// other non-200 status and any "ok": false payload is fatal and not retried.
func (c *Client) get(ctx context.Context, method string, params url.Values) (*Response, error) {
	reqURL := c.baseURL + "/" + method
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", method, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request to %s failed: %w", method, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if attempt >= c.retryLimit {
				log.Error("❌ Still rate-limited after %d attempts on %s, giving up", attempt, method)
				return nil, fmt.Errorf("%s: %w", method, core.ErrRetryBudgetExceeded)
			}

			wait := c.retryWait(resp.Header.Get("Retry-After"))
			log.Info("🔄 Rate-limited on %s. Retrying after %s (%dx)", method, wait, attempt)
			c.sleep(wait)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s response: %w", method, err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, &core.APIError{
				Method:     method,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
			}
		}

		var env apiEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
		}
		if !env.OK {
			return nil, &core.APIError{
				Method:     method,
				StatusCode: resp.StatusCode,
				Payload:    string(body),
			}
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", method, err)
		}

		return &Response{
			NextCursor: strings.TrimSpace(env.ResponseMetadata.NextCursor),
			fields:     fields,
		}, nil
	}
}

// retryWait converts a Retry-After header into a backoff duration. A missing
// or unparseable hint still backs off by the fixed margin.
func (c *Client) retryWait(retryAfter string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter))
	if err != nil || seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds)*time.Second + c.retryMargin
}
