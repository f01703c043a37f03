package timefmt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timecop/internal/timefmt"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{299, "4m 59s"},
		{3600, "1h 0m 0s"},
		{5445, "1h 30m 45s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, timefmt.FormatSeconds(c.seconds), "seconds=%d", c.seconds)
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 18, 30, 0, 0, time.UTC)

	start, end := timefmt.Window(now, 9.5)
	assert.Equal(t, now, end)
	assert.Equal(t, time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), start)
}

func TestEpochMillisRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ms := timefmt.EpochMillis(now)
	assert.Equal(t, now.UnixMilli(), ms)
	assert.True(t, timefmt.FromEpochMillis(ms).Equal(now))
}
