package core

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID with the specified prefix.
// Example: NewID("run") returns "run_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	cleanPrefix := strings.TrimSpace(strings.ToLower(prefix))
	if cleanPrefix == "" {
		panic("prefix cannot be empty")
	}
	return fmt.Sprintf("%s_%s", cleanPrefix, ulid.Make().String())
}

// IsValidID reports whether s looks like an ID produced by NewID with the
// given prefix.
func IsValidID(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return false
	}
	_, err := ulid.ParseStrict(rest)
	return err == nil
}
