package models

import (
	"time"
)

// TriState is the answer to "is this course active right now". Upstream date
// fields are frequently absent or garbage, so the honest answer is sometimes
// neither true nor false.
type TriState int

const (
	Unknown TriState = iota
	Inactive
	Active
)

func (t TriState) String() string {
	switch t {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// MarshalJSON renders Active/Inactive as plain booleans and Unknown as null,
// matching what the gadget expects from the nullable-boolean fields.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Active:
		return []byte("true"), nil
	case Inactive:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*t = Active
	case "false":
		*t = Inactive
	default:
		*t = Unknown
	}
	return nil
}

// upstreamTimeLayouts covers the date shapes the dashboard has been observed
// to return: full ISO-8601 with zone, without zone, and bare dates.
var upstreamTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
}

// ParseUpstreamTime parses a course date field. The second return is false
// when the value is empty or matches no known layout.
func ParseUpstreamTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range upstreamTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// IsActive reports whether now falls inside the half-open window
// [start, end). The end bound is exclusive so midnight-aligned courses are
// not counted on both sides of the boundary. A missing or unparsable bound
// yields Unknown; an inverted window (start after end) yields Inactive since
// that is upstream data this service does not control.
func IsActive(now time.Time, start, end string) TriState {
	startTs, ok := ParseUpstreamTime(start)
	if !ok {
		return Unknown
	}
	endTs, ok := ParseUpstreamTime(end)
	if !ok {
		return Unknown
	}
	if startTs.After(endTs) {
		return Inactive
	}
	if !now.Before(startTs) && now.Before(endTs) {
		return Active
	}
	return Inactive
}
