package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForResponseURL(t *testing.T) {
	assert.IsType(t, &LogNotifier{}, ForResponseURL(""))
	assert.IsType(t, &WebhookNotifier{}, ForResponseURL("https://hooks.slack.com/respond/T1"))
}
