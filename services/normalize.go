package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date handling for the analytics engine. Trade dates arrive as plain
// "YYYY-MM-DD" strings (sometimes with a trailing "T..." time component).
// They must be interpreted as local calendar dates: feeding them through an
// RFC 3339 parser would pin them to UTC and shift them a day for callers
// west of Greenwich.

// DayKey strips any time component, leaving the bare calendar date
func DayKey(dateStr string) string {
	if idx := strings.IndexByte(dateStr, 'T'); idx >= 0 {
		return dateStr[:idx]
	}
	return dateStr
}

// ParseLocalDate parses "YYYY-MM-DD" (or "YYYY-MM-DDT...") as midnight in
// the local time zone. Malformed input yields the zero time.
func ParseLocalDate(dateStr string) time.Time {
	parts := strings.SplitN(DayKey(dateStr), "-", 3)
	if len(parts) != 3 {
		return time.Time{}
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// FormatLocalDate renders a local date back to "YYYY-MM-DD"
func FormatLocalDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// parseLoggedAt parses a trade's logging timestamp. Returns false when the
// value is empty or unparseable, in which case the trade is excluded from
// time-of-day bucketing.
func parseLoggedAt(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// round2 matches the chart-facing rounding of the payoff and analytics
// outputs: two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
