package datekey

import (
	"fmt"
	"regexp"
	"time"
)

// Layout is the canonical day key format used as both map key and inclusive
// range bound throughout the API.
const Layout = "2006-01-02"

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FromTime keys a time by its own calendar day. No conversion to UTC: the
// year/month/day the value carries in its location are used as-is.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// Parse canonicalizes a date-like string to a YYYY-MM-DD key. Accepted
// inputs are an already-formatted key, an RFC3339 timestamp, or a timestamp
// without offset; anything else is rejected.
func Parse(s string) (string, error) {
	if keyPattern.MatchString(s) {
		// Still reject impossible dates like 2024-02-30.
		if _, err := time.Parse(Layout, s); err != nil {
			return "", fmt.Errorf("invalid date %q: %w", s, err)
		}
		return s, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format %q", s)
}

// ToTime converts a key back to a midnight time.Time for range arithmetic.
func ToTime(key string) (time.Time, error) {
	return time.Parse(Layout, key)
}

// Range returns every key from start to end inclusive, ascending. An
// inverted range yields nil, mirroring inclusive range-query semantics where
// start > end naturally selects nothing. Callers use this to densify the
// sparse series the aggregation layer returns.
func Range(startKey, endKey string) ([]string, error) {
	start, err := ToTime(startKey)
	if err != nil {
		return nil, err
	}
	end, err := ToTime(endKey)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, nil
	}
	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, FromTime(d))
	}
	return keys, nil
}
