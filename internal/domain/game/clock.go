package game

import "strings"

// NormalizeClock turns an ISO-8601-like duration such as "PT12M00.00S" into
// "12:00". Anything not starting with "PT" is rejected.
func NormalizeClock(raw string) (string, bool) {
	rest, ok := strings.CutPrefix(raw, "PT")
	if !ok {
		return "", false
	}
	rest = strings.ReplaceAll(rest, "M", ":")
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}

// WithNormalizedClock returns a copy whose clock is normalized when the raw
// form is recognized, and untouched otherwise.
func (s Snapshot) WithNormalizedClock() Snapshot {
	if clock, ok := NormalizeClock(s.Clock); ok {
		s.Clock = clock
	}
	return s
}
