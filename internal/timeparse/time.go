package timeparse

import (
	"fmt"
	"time"
)

// timeLayouts are tried in order. The first two are interpreted in UTC.
var timeLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
}

// ParseTime parses a timestamp in one of these formats:
//   - YYYY-MM-DD (00:00:00 UTC)
//   - YYYY-MM-DD HH:MM:SS (UTC)
//   - RFC3339, e.g. 2018-10-27T10:00:00Z (any timezone)
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339)", s)
}

// Since decomposes the time elapsed between the timestamp s and now. A
// timestamp after now yields a negative Duration.
func Since(s string, now time.Time, opts *Options) (Duration, error) {
	t, err := ParseTime(s)
	if err != nil {
		return Duration{}, err
	}
	// time.Time.Sub saturates after roughly 292 years.
	ms := float64(now.Unix()-t.Unix())*1000 + float64(now.Nanosecond()-t.Nanosecond())/1e6
	return Format(ms, opts), nil
}
