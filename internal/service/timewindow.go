package service

import (
	"strings"
	"time"
)

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// parseTimestamp reads an ISO-8601 timestamp. Zoned values ("Z" or an offset) are absolute;
// naive values are read as wall-clock time in loc.
func parseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// window keeps entries newer than now - hours.
type window struct {
	cutoff time.Time
	loc    *time.Location
}

func newWindow(now time.Time, hours int, loc *time.Location) window {
	return window{
		cutoff: now.Add(-time.Duration(hours) * time.Hour),
		loc:    loc,
	}
}

// admit parses ts and reports whether it lies inside the window.
// Unparsable timestamps are rejected, never surfaced as errors.
func (w window) admit(ts string) (time.Time, bool) {
	t, ok := parseTimestamp(ts, w.loc)
	if !ok || t.Before(w.cutoff) {
		return time.Time{}, false
	}
	return t, true
}

func (w window) hourKey(t time.Time) string {
	return t.In(w.loc).Format("15") + ":00"
}
