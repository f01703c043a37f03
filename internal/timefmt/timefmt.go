package timefmt

import (
	"fmt"
	"time"
)

// FormatSeconds formats a duration in seconds as "1h 30m 45s".
// Leading zero units are omitted; the seconds part is always present.
func FormatSeconds(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Window returns the [start, end] lookback window ending at now.
// hours may be fractional (e.g. 9.5).
func Window(now time.Time, hours float64) (time.Time, time.Time) {
	start := now.Add(-time.Duration(hours * float64(time.Hour)))
	return start, now
}

// EpochMillis converts t to a millisecond Unix timestamp, the format the
// ClickUp API uses for date range parameters.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromEpochMillis converts a millisecond Unix timestamp back to a time.Time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
