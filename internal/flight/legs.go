package flight

import (
	"sort"
	"strings"
	"time"
)

// isoLayoutNoZone is the provider's zone-less timestamp shape; values
// in it are interpreted as UTC.
const isoLayoutNoZone = "2006-01-02T15:04:05"

// ParseTime converts a raw record timestamp into a concrete time. It
// accepts time.Time values directly, RFC 3339 strings (with or without
// a trailing Z), and zone-less "YYYY-MM-DDTHH:MM:SS" strings taken as
// UTC. The second return is false when the value is absent or does not
// parse.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			return parsed, true
		}
		if parsed, err := time.ParseInLocation(isoLayoutNoZone, s, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// RecencyKey computes the ordering key for a leg: the landing time if
// known, else the arrival estimate, else takeoff, first-seen, or
// last-seen. Legs with no usable timestamp sort before everything else
// (the zero time).
func RecencyKey(rec any) time.Time {
	raw := First(rec, "datetime_landed", "datetime_landing", "datetime_arrival",
		"datetime_takeoff", "first_seen", "last_seen")
	t, ok := ParseTime(raw)
	if !ok {
		return time.Time{}
	}
	return t
}

// MostRelevant picks the leg with the greatest recency key. Ties keep
// the later element of the input, matching a stable ascending sort. The
// input slice is never reordered.
func MostRelevant(legs []Record) (Record, bool) {
	if len(legs) == 0 {
		return nil, false
	}
	sorted := make([]Record, len(legs))
	copy(sorted, legs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return RecencyKey(sorted[i]).Before(RecencyKey(sorted[j]))
	})
	return sorted[len(sorted)-1], true
}

// Filter keeps the legs touching any of the target airport codes on
// the side implied by direction: inbound matches destinations,
// outbound matches origins, anything else matches either end. When no
// leg matches, the full input is returned unchanged so a mismatched
// hint degrades gracefully instead of producing an empty answer.
func Filter(legs []Record, targets map[string]bool, direction string) []Record {
	if len(targets) == 0 {
		return legs
	}
	matched := make([]Record, 0, len(legs))
	for _, leg := range legs {
		dest := strings.ToUpper(FirstString(leg, destKeys...))
		orig := strings.ToUpper(FirstString(leg, originKeys...))
		var hit bool
		switch direction {
		case "inbound":
			hit = targets[dest]
		case "outbound":
			hit = targets[orig]
		default:
			hit = targets[dest] || targets[orig]
		}
		if hit {
			matched = append(matched, leg)
		}
	}
	if len(matched) == 0 {
		return legs
	}
	return matched
}
