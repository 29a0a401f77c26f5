package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slackvault/core"
)

// sleepRecorder replaces the backoff sleep so tests finish instantly while
// still observing every requested wait.
type sleepRecorder struct {
	slept []time.Duration
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.slept = append(r.slept, d)
}

func (r *sleepRecorder) total() time.Duration {
	var total time.Duration
	for _, d := range r.slept {
		total += d
	}
	return total
}

func TestClientRetriesAfterRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"ok": true, "members": [], "response_metadata": {"next_cursor": ""}}`)
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	client := NewClient("xoxp-test",
		WithBaseURL(server.URL),
		WithRetryMargin(3*time.Second),
		WithSleep(recorder.sleep),
	)

	resp, err := client.get(context.Background(), "users.list", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "should succeed on the third attempt")

	// Each of the two rate-limited attempts backs off Retry-After + margin.
	assert.Len(t, recorder.slept, 2)
	assert.GreaterOrEqual(t, recorder.total(), 2*(2*time.Second+3*time.Second))

	_, ok := resp.Field("members")
	assert.True(t, ok)
}

func TestClientAbortsWhenRetryBudgetExhausted(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	client := NewClient("xoxp-test",
		WithBaseURL(server.URL),
		WithRetryLimit(5),
		WithSleep(recorder.sleep),
	)

	_, err := client.get(context.Background(), "users.list", url.Values{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRetryBudgetExceeded))
	assert.Equal(t, 5, calls, "should stop after exactly the retry limit")
	assert.Len(t, recorder.slept, 4, "no sleep after the final attempt")
}

func TestClientTreatsOtherStatusesAsFatal(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("xoxp-test", WithBaseURL(server.URL))

	_, err := client.get(context.Background(), "conversations.list", url.Values{})
	require.Error(t, err)

	apiErr, ok := core.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 1, calls, "fatal statuses are not retried")
}

func TestClientTreatsNotOKPayloadAsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok": false, "error": "invalid_auth"}`)
	}))
	defer server.Close()

	client := NewClient("xoxp-test", WithBaseURL(server.URL))

	_, err := client.get(context.Background(), "users.list", url.Values{})
	require.Error(t, err)

	apiErr, ok := core.IsAPIError(err)
	require.True(t, ok)
	assert.Contains(t, apiErr.Payload, "invalid_auth")
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer server.Close()

	client := NewClient("xoxp-secret", WithBaseURL(server.URL))

	_, err := client.get(context.Background(), "users.list", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer xoxp-secret", gotAuth)
}
