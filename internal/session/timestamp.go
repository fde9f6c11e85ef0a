package session

import (
	"regexp"
	"strconv"
	"time"
)

var (
	uuidRe      = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
	bareDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	unixSecRe   = regexp.MustCompile(`^\d{10}$`)
	unixMilliRe = regexp.MustCompile(`^\d{13}$`)
)

// genericLayouts is the fallback parse ladder for timestamps that match none
// of the recognized shapes.
var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsValidTimestamp reports whether s can serve as a record timestamp: it is
// non-empty, is not a UUID, and has a recognized or generically parseable
// shape.
func IsValidTimestamp(s string) bool {
	if s == "" || uuidRe.MatchString(s) {
		return false
	}
	if isoPrefixRe.MatchString(s) || bareDateRe.MatchString(s) ||
		unixSecRe.MatchString(s) || unixMilliRe.MatchString(s) {
		return true
	}
	return !parseGeneric(s).IsZero()
}

// ParseTimestamp parses s, dispatching on the same shapes IsValidTimestamp
// recognizes. Unparseable input yields the zero time as an "unknown"
// sentinel rather than an error.
func ParseTimestamp(s string) time.Time {
	if s == "" || uuidRe.MatchString(s) {
		return time.Time{}
	}
	switch {
	case unixSecRe.MatchString(s):
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}
		}
		return time.Unix(n, 0).UTC()
	case unixMilliRe.MatchString(s):
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(n).UTC()
	}
	return parseGeneric(s)
}

func parseGeneric(s string) time.Time {
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
