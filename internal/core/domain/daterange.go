package domain

import (
	"fmt"
	"regexp"
	"time"
)

// boundLayouts are the accepted ISO-8601 forms for date range bounds.
// A bare date means midnight UTC.
var boundLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

// postTimePattern is the accepted form of a forum post's created_at:
// UTC with an optional fraction of 1 to 6 digits. time.Parse alone would
// accept any number of fractional digits.
var postTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,6})?Z$`)

// DateRange is an inclusive range of instants.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange parses inclusive ISO-8601 bounds.
func NewDateRange(from, to string) (DateRange, error) {
	start, err := parseBound(from)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: date_from %q", ErrInvalidInput, from)
	}
	end, err := parseBound(to)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: date_to %q", ErrInvalidInput, to)
	}
	return DateRange{From: start, To: end}, nil
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ContainsPostTime parses a post timestamp and checks it against the range.
// Missing or unparseable timestamps are never contained.
func (r DateRange) ContainsPostTime(createdAt string) bool {
	t, ok := ParsePostTime(createdAt)
	if !ok {
		return false
	}
	return r.Contains(t)
}

// ParsePostTime parses a UTC "Z"-suffixed timestamp with or without
// fractional seconds.
func ParsePostTime(s string) (time.Time, bool) {
	if !postTimePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseBound(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range boundLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
