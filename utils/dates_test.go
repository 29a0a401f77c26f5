package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("15/03/2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("2024-03-15")
	assert.Error(t, err)
	_, err = ParseDate("31/02/2024")
	assert.Error(t, err)
}

func TestFormatSlackTS(t *testing.T) {
	formatted := FormatSlackTS("1610000000.000200")
	assert.Contains(t, formatted, "/2021")

	// Unparseable timestamps pass through untouched.
	assert.Equal(t, "not-a-ts", FormatSlackTS("not-a-ts"))
}
