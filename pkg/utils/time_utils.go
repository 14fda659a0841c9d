package utils

import (
	"fmt"
	"time"
)

// IsTimestampStale checks if a timestamp is older than the specified duration
func IsTimestampStale(now, timestamp time.Time, staleDuration time.Duration) bool {
	return now.Sub(timestamp) > staleDuration
}

// FormatAge renders how long ago timestamp was, at second resolution
func FormatAge(now, timestamp time.Time) string {
	age := now.Sub(timestamp)
	switch {
	case age < time.Second:
		return "just now"
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age/time.Second))
	case age < time.Hour:
		return fmt.Sprintf("%dm%02ds ago", int(age/time.Minute), int(age%time.Minute/time.Second))
	default:
		return fmt.Sprintf("%dh%02dm ago", int(age/time.Hour), int(age%time.Hour/time.Minute))
	}
}
