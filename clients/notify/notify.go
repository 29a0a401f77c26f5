// Package notify reports progress and diagnostics either to the local log or
// to an optional response-callback webhook, matching how the export is
// typically triggered from a chat command.
package notify

import (
	"github.com/slack-go/slack"

	"slackvault/core/log"
)

// Notifier delivers operator-facing messages.
type Notifier interface {
	Say(text string)
}

// LogNotifier writes messages to the process log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Say(text string) {
	log.Info("%s", text)
}

// WebhookNotifier posts messages to a response URL as Slack webhook payloads.
// Delivery is best-effort: a failed post is logged, never fatal.
type WebhookNotifier struct {
	responseURL string
}

func NewWebhookNotifier(responseURL string) *WebhookNotifier {
	return &WebhookNotifier{responseURL: responseURL}
}

func (n *WebhookNotifier) Say(text string) {
	if err := slack.PostWebhook(n.responseURL, &slack.WebhookMessage{Text: text}); err != nil {
		log.Warn("⚠️ Failed to post to response URL: %v", err)
		log.Info("%s", text)
	}
}

// ForResponseURL picks the webhook notifier when a response URL is
// configured and falls back to the log otherwise.
func ForResponseURL(responseURL string) Notifier {
	if responseURL != "" {
		return NewWebhookNotifier(responseURL)
	}
	return NewLogNotifier()
}
