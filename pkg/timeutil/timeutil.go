// Package timeutil parses the timestamp and duration notations found in test reports.
package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/appsurify/testbrain/internal/logger"
)

// DatetimeLayout is the layout used when a timestamp is written back to a report.
const DatetimeLayout = "2006-01-02T15:04:05.000000"

// Now is the clock used for missing timestamps. Tests may replace it.
var Now = time.Now

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// StringToDatetime parses an ISO-8601-like timestamp.
// An empty input yields the current time instead of an error, so conversions stay total.
// Unparsable input is handled the same way and logged.
func StringToDatetime(s string) time.Time {
	t, _ := ParseDatetime(s)
	return t
}

// ParseDatetime is StringToDatetime that also reports whether s held a timestamp.
// When it did not, the returned time is the current time.
func ParseDatetime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Now(), false
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	logger.Warnf("Unable to parse timestamp %q, using current time", s)
	return Now(), false
}

// DatetimeToString formats a timestamp as "YYYY-MM-DDTHH:MM:SS.ffffff".
// A zero time is replaced by the current time.
func DatetimeToString(t time.Time) string {
	if t.IsZero() {
		t = Now()
	}
	return t.Format(DatetimeLayout)
}

// TimespanToFloat converts a "[d.]hh:mm:ss[.fffffff]" duration into seconds.
// An empty input yields 0. Invalid input is logged and yields 0.
func TimespanToFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		logger.Warnf("Unable to parse timespan %q", s)
		return 0
	}

	var days float64
	dayAndHours := strings.SplitN(parts[0], ".", 2)
	if len(dayAndHours) == 2 {
		d, err := strconv.ParseFloat(dayAndHours[0], 64)
		if err != nil {
			logger.Warnf("Unable to parse timespan %q", s)
			return 0
		}
		days = d
	}

	hours, errH := strconv.ParseFloat(dayAndHours[len(dayAndHours)-1], 64)
	minutes, errM := strconv.ParseFloat(parts[1], 64)
	seconds, errS := strconv.ParseFloat(parts[2], 64)
	if errH != nil || errM != nil || errS != nil {
		logger.Warnf("Unable to parse timespan %q", s)
		return 0
	}

	return days*86400 + hours*3600 + minutes*60 + seconds
}

// RoundTime rounds a duration in seconds to 3 decimal places.
func RoundTime(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}
