package flight

import (
	"regexp"
	"strings"

	"github.com/yegors/flightqa/internal/refdata"
)

// callsignPattern matches an ICAO-style callsign: three-letter carrier
// code followed by the flight number digits.
var callsignPattern = regexp.MustCompile(`^([A-Z]{3})(\d+)$`)

// CallsignToIATA rewrites an ICAO callsign such as "AAL3165" into the
// passenger-facing IATA flight number "AA3165" using the carrier code
// table. Callsigns that do not match the ICAO shape, or whose carrier
// code is unknown, yield "".
func CallsignToIATA(tables *refdata.Tables, callsign string) string {
	m := callsignPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(callsign)))
	if m == nil {
		return ""
	}
	iata, ok := tables.CarrierIATA(m[1])
	if !ok {
		return ""
	}
	return iata + m[2]
}

// DisplayID picks the identifier an answer line should show for a
// leg: the canonical flight number when present, else the callsign
// rewritten to IATA form, else the raw callsign, else "Flight".
func DisplayID(tables *refdata.Tables, rec any) string {
	if f := strings.TrimSpace(FirstString(rec, "flight")); f != "" {
		return f
	}
	cs := strings.TrimSpace(FirstString(rec, "callsign"))
	if mapped := CallsignToIATA(tables, cs); mapped != "" {
		return mapped
	}
	if cs != "" {
		return cs
	}
	return "Flight"
}
