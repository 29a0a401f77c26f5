package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("SLACK_USER_TOKEN", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLACK_USER_TOKEN")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SLACK_USER_TOKEN", "xoxp-test")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_URL", "")
	t.Setenv("RESPONSE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "slack.db", cfg.DBURL)
	assert.Empty(t, cfg.ResponseURL)
	assert.Equal(t, DefaultRetryMargin, cfg.RetryMargin)
	assert.Equal(t, DefaultRetryLimit, cfg.RetryLimit)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SLACK_USER_TOKEN", "xoxp-test")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}
