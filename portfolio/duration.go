package portfolio

import (
	"fmt"
	"strings"
	"time"
)

func parseDate(s string) (time.Time, error) {
	if len(s) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// SpanLabel renders the length of an engagement as "2 years, 3 months".
// An empty end means it is still running at now.
func SpanLabel(start, end string, now time.Time) (string, error) {
	from, err := parseDate(start)
	if err != nil {
		return "", err
	}
	to := now
	if strings.TrimSpace(end) != "" {
		if to, err = parseDate(end); err != nil {
			return "", err
		}
	}

	years := to.Year() - from.Year()
	months := int(to.Month()) - int(from.Month())
	if months < 0 {
		years--
		months += 12
	}

	switch {
	case years > 0 && months > 0:
		return plural(years, "year") + ", " + plural(months, "month"), nil
	case years > 0:
		return plural(years, "year"), nil
	default:
		return plural(months, "month"), nil
	}
}
