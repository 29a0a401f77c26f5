package utils

import (
	"fmt"
	"strconv"
	"time"
)

// dateLayout is the dd/mm/yyyy format accepted on the command line.
const dateLayout = "02/01/2006"

// ParseDate converts a dd/mm/yyyy argument into a local-midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected dd/mm/yyyy", dateStr)
	}
	return t, nil
}

// FormatSlackTS renders a Slack timestamp string ("1610000000.000200") as a
// human-readable local date. Unparseable timestamps are returned as-is.
func FormatSlackTS(ts string) string {
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ts
	}
	return time.Unix(int64(seconds), 0).Format("02/01/2006 15:04:05")
}
