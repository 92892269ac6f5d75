package extract

import (
	"fmt"
	"time"
)

// Chromium stores timestamps as microseconds since 1601-01-01T00:00:00Z.
// The offset between that epoch and the Unix epoch is fixed.
const chromeEpochOffsetMicros int64 = 11_644_473_600_000_000

// isoLayout is fixed-width with zero-padded microseconds, so lexicographic
// ordering of formatted instants matches chronological ordering.
const isoLayout = "2006-01-02T15:04:05.000000Z07:00"

// maxChromeMicros is the largest timestamp the ISO form can represent
// (9999-12-31T23:59:59.999999Z) expressed in Chromium microseconds.
var maxChromeMicros = time.Date(9999, time.December, 31, 23, 59, 59, 999999000, time.UTC).UnixMicro() + chromeEpochOffsetMicros

// ChromeTime converts a Chromium timestamp to ISO-8601 UTC. Zero is the
// browser's "never visited" sentinel and maps to the empty string. Negative
// values and values past year 9999 are rejected rather than silently
// wrapped.
func ChromeTime(ts int64) (string, error) {
	if ts == 0 {
		return "", nil
	}
	if ts < 0 || ts > maxChromeMicros {
		return "", fmt.Errorf("chromium timestamp %d out of range", ts)
	}
	return time.UnixMicro(ts - chromeEpochOffsetMicros).UTC().Format(isoLayout), nil
}

// ChromeMicros converts an instant back to Chromium microseconds. It is the
// inverse of ChromeTime for every non-sentinel timestamp in range.
func ChromeMicros(t time.Time) int64 {
	return t.UnixMicro() + chromeEpochOffsetMicros
}

// FormatInstant renders an instant in the same fixed-width ISO form used
// for entry timestamps.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseInstant parses a string produced by ChromeTime or FormatInstant.
func ParseInstant(s string) (time.Time, error) {
	return time.Parse(isoLayout, s)
}
