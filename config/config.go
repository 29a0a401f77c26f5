package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"slackvault/core/log"
)

// DefaultRetryMargin is added on top of the server-provided Retry-After hint
// before retrying a rate-limited request, in seconds.
const DefaultRetryMargin = 10

// DefaultRetryLimit bounds consecutive rate-limited attempts for a single
// request before the run aborts with a resume hint.
const DefaultRetryLimit = 5

type AppConfig struct {
	// SlackToken authorizes every Slack Web API call. Required: the process
	// fails fast at startup when it is absent.
	SlackToken string

	// DBDriver selects the store: "sqlite" (default) or "postgres".
	DBDriver string
	// DBURL is the SQLite file path or the Postgres connection string.
	DBURL string

	// ResponseURL, when set, receives progress and diagnostic messages as
	// webhook posts instead of plain stderr logging. Optional.
	ResponseURL string

	RetryMargin int
	RetryLimit  int
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("⚠️ Could not load .env file, continuing with system env vars")
	}

	slackToken, err := getEnvRequired("SLACK_USER_TOKEN")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		SlackToken:  slackToken,
		DBDriver:    getEnvWithDefault("DB_DRIVER", "sqlite"),
		DBURL:       getEnvWithDefault("DB_URL", "slack.db"),
		ResponseURL: getEnvWithDefault("RESPONSE_URL", ""),
		RetryMargin: DefaultRetryMargin,
		RetryLimit:  DefaultRetryLimit,
	}

	if config.DBDriver != "sqlite" && config.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: expected sqlite or postgres", config.DBDriver)
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
