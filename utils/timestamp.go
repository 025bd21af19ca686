package utils

import "time"

// TimestampLayout is RFC3339 UTC with fixed-width nanoseconds so timestamps
// sort chronologically as plain strings (they double as DynamoDB sort keys
// and as the feed ordering key).
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// Timestamp formats t in the canonical sortable layout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current time in the canonical sortable layout.
func Now() string {
	return Timestamp(time.Now())
}

// ParseTimestamp parses a canonical timestamp. Accepts any RFC3339 string.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
