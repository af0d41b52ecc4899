// Package parser turns natural-language time expressions into timestamps,
// used by history filtering flags like --since.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	apperrors "github.com/example/hopstack/internal/errors"
)

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(hour|day|week|month)$`)

// ParseSince parses a natural-language time expression into an absolute
// timestamp. Empty input and "now" mean the current moment.
func ParseSince(input string) (time.Time, error) {
	return parseSinceAt(input, time.Now())
}

// parseSinceAt is ParseSince with an injectable reference time for tests.
func parseSinceAt(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return now, nil
	}

	// Period expressions resolve to the period's start.
	if match := periodRegex.FindStringSubmatch(input); match != nil {
		return periodStart(match[1], match[2], now), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, apperrors.Wrapf(apperrors.ErrInvalidTimestamp, "%q", input)
	}
	return result.Time, nil
}

// periodStart resolves expressions like "this week" or "last month" to the
// start of the named period.
func periodStart(modifier, period string, now time.Time) time.Time {
	modifier = strings.ToLower(modifier)
	period = strings.ToLower(period)
	previous := modifier == "last" || modifier == "previous"

	var t time.Time
	switch period {
	case "hour":
		t = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		if previous {
			t = t.Add(-time.Hour)
		}

	case "day":
		t = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -1)
		}

	case "week":
		// Weeks start on Monday.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		t = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -7)
		}

	case "month":
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}
	}
	return t
}
