package flight

import (
	"time"

	"github.com/yegors/flightqa/internal/refdata"
)

// localTimeLayout renders "August 30, 2025 at 12:19 PM"; hours carry
// no leading zero.
const localTimeLayout = "January 2, 2006 at 3:04 PM"

// utcAliases are tried in order when a requested zone name cannot be
// loaded, before giving up and using time.UTC directly.
var utcAliases = []string{"UTC", "Etc/UTC", "GMT", "Etc/GMT"}

// Resolver picks display timezones for answers and renders timestamps
// into them. Airport codes map to zones through the reference tables.
type Resolver struct {
	tables *refdata.Tables
}

// NewResolver builds a Resolver over the given reference tables.
func NewResolver(tables *refdata.Tables) *Resolver {
	return &Resolver{tables: tables}
}

// BestZone selects the timezone an answer should be rendered in:
// an explicit user zone wins, then the destination airport's zone,
// then the origin airport's zone, then UTC. Airport arguments are
// codes; unknown codes contribute nothing.
func (r *Resolver) BestZone(userTZ, origCode, destCode string) string {
	if userTZ != "" {
		return userTZ
	}
	if tz, ok := r.tables.AirportZone(destCode); ok {
		return tz
	}
	if tz, ok := r.tables.AirportZone(origCode); ok {
		return tz
	}
	return "UTC"
}

// FormatLocal renders a raw record timestamp in the named zone, in the
// long human-readable form. Absent or unparsable values render as
// "time unknown". A zone that fails to load falls back through the UTC
// aliases so a bad zone name never loses the timestamp itself.
func (r *Resolver) FormatLocal(v any, zone string) string {
	t, ok := ParseTime(v)
	if !ok {
		return "time unknown"
	}
	return t.In(loadZone(zone)).Format(localTimeLayout)
}

func loadZone(zone string) *time.Location {
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			return loc
		}
	}
	for _, alias := range utcAliases {
		if loc, err := time.LoadLocation(alias); err == nil {
			return loc
		}
	}
	return time.UTC
}
