// Package parser turns user-supplied date expressions into day-granular
// calendar dates for scheduling.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/workplan/internal/schedule"
)

// ParseDate parses a date expression such as "2026-03-02", "today" or
// "next monday" and normalizes it to midnight. Times of day in the
// input are discarded; scheduling is day-granular.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, NewDateParseError("date", input, "date expression is empty")
	}
	if strings.EqualFold(input, "today") || strings.EqualFold(input, "now") {
		return schedule.DateOnly(time.Now()), nil
	}

	// Exact ISO dates bypass the natural-language parser.
	if t, err := time.ParseInLocation("2006-01-02", input, time.Local); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, NewDateParseError("date", input,
			"could not understand the date expression")
	}
	return schedule.DateOnly(result.Time), nil
}

// FormatDate renders a date the way all CLI output shows dates.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Mon 2006-01-02")
}
