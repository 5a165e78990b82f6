// Package refdata holds the static lookup tables the answer pipeline
// depends on: airport code to IANA timezone, and ICAO airline prefix to
// IATA carrier code. Both are read-only after initialization; overrides
// can be layered in from the sqlite reference store at startup.
package refdata

import "strings"

// Tables bundles the two lookup tables. Treat as immutable once built.
type Tables struct {
	airportZones map[string]string
	carrierIATA  map[string]string
}

// defaultAirportZones maps IATA and ICAO airport codes to IANA zones.
var defaultAirportZones = map[string]string{
	// Honduras (Comayagua / Palmerola)
	"XPL":  "America/Tegucigalpa",
	"MHPR": "America/Tegucigalpa",

	// USA (Florida)
	"MIA":  "America/New_York",
	"KMIA": "America/New_York",
	"TPA":  "America/New_York",
	"KTPA": "America/New_York",

	// Spain
	"MAD":  "Europe/Madrid",
	"LEMD": "Europe/Madrid",
	"BCN":  "Europe/Madrid",
	"LEBL": "Europe/Madrid",
}

// defaultCarrierIATA maps ICAO airline callsign prefixes to IATA codes.
var defaultCarrierIATA = map[string]string{
	// North America
	"AAL": "AA",
	"UAL": "UA",
	"DAL": "DL",
	"SWA": "WN",
	"JBU": "B6",
	"ASA": "AS",
	"FFT": "F9",
	"NKS": "NK",
	"SKW": "OO",
	"ASH": "YX",
	"RPA": "YX",
	"EDV": "9E",
	"ENY": "MQ",
	"QXE": "QX",
	"UPS": "5X",
	"ACA": "AC",

	// Spain: majors, regionals, leisure and charter
	"IBE": "IB", // Iberia
	"IBS": "I2", // Iberia Express
	"VLG": "VY", // Vueling
	"AEA": "UX", // Air Europa
	"ANE": "YW", // Air Nostrum
	"VOE": "V7", // Volotea
	"EVE": "E9", // Iberojet
	"IBB": "NT", // Binter Canarias
	"CNF": "PM", // Canaryfly
	"PLM": "EB", // Wamos Air
	"WFL": "2W", // World2Fly
	"PUE": "PU", // Plus Ultra
	"SWT": "WT", // Swiftair
	"LAV": "AP", // Albastar
	"PVG": "P6", // Privilege Style
	"HAT": "HT", // Air Horizont
	"OVA": "X5", // Air Europa Express

	// Other European majors
	"BAW": "BA",
	"VIR": "VS",
	"DLH": "LH",
	"AFR": "AF",
	"KLM": "KL",
	"SWR": "LX",
	"TAP": "TP",
	"ITY": "AZ",
	"THY": "TK",
	"QTR": "QR",
	"UAE": "EK",
	"EZY": "U2",
	"RYR": "FR",
	"WZZ": "W6",
	"LOT": "LO",

	// Latin America and Caribbean
	"AVA": "AV",
	"CMP": "CM",
	"AMX": "AM",
	"ARG": "AR",
	"LPE": "LP",
	"LAN": "LA",
	"TAM": "LA",
	"GLO": "G3",
	"AZU": "AD",
	"BHS": "UP",
	"CAY": "KX",
	"BWA": "BW",
	"DWI": "DM",
}

// Defaults returns tables built from the compiled-in data only.
func Defaults() *Tables {
	return New(nil, nil)
}

// New builds tables from the compiled-in data with the given overrides
// merged on top. Override keys win over built-in entries.
func New(airportZones, carrierIATA map[string]string) *Tables {
	t := &Tables{
		airportZones: make(map[string]string, len(defaultAirportZones)+len(airportZones)),
		carrierIATA:  make(map[string]string, len(defaultCarrierIATA)+len(carrierIATA)),
	}
	for code, zone := range defaultAirportZones {
		t.airportZones[code] = zone
	}
	for code, zone := range airportZones {
		t.airportZones[strings.ToUpper(strings.TrimSpace(code))] = zone
	}
	for icao, iata := range defaultCarrierIATA {
		t.carrierIATA[icao] = iata
	}
	for icao, iata := range carrierIATA {
		t.carrierIATA[strings.ToUpper(strings.TrimSpace(icao))] = strings.ToUpper(strings.TrimSpace(iata))
	}
	return t
}

// AirportZone returns the IANA zone for an airport code. The boolean
// reports whether the airport is known.
func (t *Tables) AirportZone(code string) (string, bool) {
	tz, ok := t.airportZones[strings.ToUpper(strings.TrimSpace(code))]
	return tz, ok
}

// CarrierIATA returns the IATA code for an ICAO airline prefix. The
// boolean reports whether the carrier is known.
func (t *Tables) CarrierIATA(icao string) (string, bool) {
	iata, ok := t.carrierIATA[strings.ToUpper(strings.TrimSpace(icao))]
	return iata, ok
}

// AirportCount returns the number of known airports
func (t *Tables) AirportCount() int { return len(t.airportZones) }

// CarrierCount returns the number of known carriers
func (t *Tables) CarrierCount() int { return len(t.carrierIATA) }
