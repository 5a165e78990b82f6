// Package nlu implements the rule-based grammar that turns a free-text
// flight question into a structured query. It is deliberately a
// pattern matcher, not a classifier: every rule is ordered and
// first-match-wins, so the same text always parses the same way.
package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent identifies what a query is asking for
type Intent string

const (
	IntentAirportLive   Intent = "airport_live"
	IntentFlightSummary Intent = "flight_summary"
	IntentFlightEvents  Intent = "flight_events"
	IntentHelp          Intent = "help"
)

// Direction is inbound (arrivals), outbound (departures), or both,
// relative to a named airport.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
	DirectionBoth     Direction = "both"
)

// Query is the structured form of a user question. A Query always has a
// direction and a limit, even when the text carried neither.
type Query struct {
	Intent    Intent
	Airport   string // "TPA", "XPL", or a name like "Kennedy"
	Direction Direction
	FlightID  string // e.g. "AA3165"
	Limit     int
	UserTZ    string // optional IANA zone name, set by the caller
}

const (
	// DefaultLimit is used when the text does not ask for one
	DefaultLimit = 10
	// MaxLimit caps how many result lines a single answer may carry
	MaxLimit = 50
)

// directionKeywords maps keywords to directions. Scan order matters:
// inbound words are tried before outbound words.
var directionKeywords = []struct {
	word      string
	direction Direction
}{
	{"arrivals", DirectionInbound},
	{"arrival", DirectionInbound},
	{"arriving", DirectionInbound},
	{"landing", DirectionInbound},
	{"departures", DirectionOutbound},
	{"departure", DirectionOutbound},
	{"departing", DirectionOutbound},
	{"takeoff", DirectionOutbound},
}

// airportBlacklist holds 3-letter tokens that look like airport codes
// but almost never are (file extensions and similar abbreviations).
// Known limitation: a real airport code that collides with one of these
// will be misparsed. Do not extend without a test fixture per token.
var airportBlacklist = map[string]bool{
	"EXE": true, "TXT": true, "PNG": true, "JPG": true,
	"PDF": true, "DOC": true, "VSC": true, "PS": true, "BAT": true,
}

var (
	limitPattern       = regexp.MustCompile(`\b(?:limit|top)\s+(\d{1,2})\b`)
	flightIDPattern    = regexp.MustCompile(`\b([A-Z]{2}\d{2,4}[A-Z]?)\b`)
	airportPrepPattern = regexp.MustCompile(`\b(?:AT|FROM|TO|IN)\s+([A-Z]{3})\b`)
	iata3Pattern       = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

// Parse converts raw question text into a Query. It never fails: text
// that matches nothing resolves to the help intent.
func Parse(text string) Query {
	lower := strings.ToLower(text)
	upper := strings.ToUpper(text)

	direction := DirectionBoth
	for _, kw := range directionKeywords {
		if strings.Contains(lower, kw.word) {
			direction = kw.direction
			break
		}
	}

	limit := DefaultLimit
	if m := limitPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	var flightID string
	if m := flightIDPattern.FindStringSubmatch(upper); m != nil {
		flightID = m[1]
	}

	airport := findAirport(upper)

	if flightID != "" {
		intent := IntentFlightSummary
		if strings.Contains(lower, "event") {
			intent = IntentFlightEvents
		}
		// Airport and direction are kept as an optional filter
		return Query{
			Intent:    intent,
			FlightID:  flightID,
			Airport:   airport,
			Direction: direction,
			Limit:     limit,
		}
	}

	intent := IntentHelp
	if airport != "" {
		intent = IntentAirportLive
	}
	return Query{
		Intent:    intent,
		Airport:   airport,
		Direction: direction,
		Limit:     limit,
	}
}

// findAirport extracts an airport code from upper-cased text. A code
// right after a preposition is preferred; otherwise the first
// standalone 3-letter token not on the blacklist wins.
func findAirport(upper string) string {
	if m := airportPrepPattern.FindStringSubmatch(upper); m != nil {
		return m[1]
	}
	for _, m := range iata3Pattern.FindAllStringSubmatch(upper, -1) {
		if !airportBlacklist[m[1]] {
			return m[1]
		}
	}
	return ""
}
