package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/flightqa/internal/flight"
	"github.com/yegors/flightqa/internal/refdata"
	"github.com/yegors/flightqa/pkg/logger"
)

type fakeProvider struct {
	airport       flight.Record
	airportErr    error
	live          []flight.Record
	liveErr       error
	summaries     []flight.Record
	summaryErr    error
	events        []flight.Record
	eventsErr     error
	resolveCalls  int
	liveCalls     int
	summaryCalls  int
	callsignCalls int
	eventsCalls   int
	lastAirport   string
	lastDirection string
	lastLimit     int
	lastFlightID  string
	lastEventID   string
}

func (f *fakeProvider) ResolveAirport(ctx context.Context, codeOrName string) (flight.Record, error) {
	f.resolveCalls++
	return f.airport, f.airportErr
}

func (f *fakeProvider) LiveFlights(ctx context.Context, airport, direction string, limit int) ([]flight.Record, error) {
	f.liveCalls++
	f.lastAirport, f.lastDirection, f.lastLimit = airport, direction, limit
	return f.live, f.liveErr
}

func (f *fakeProvider) FlightSummary(ctx context.Context, flightID string, from, to time.Time) ([]flight.Record, error) {
	f.summaryCalls++
	f.lastFlightID = flightID
	return f.summaries, f.summaryErr
}

func (f *fakeProvider) FlightSummaryByCallsign(ctx context.Context, callsign string, from, to time.Time) ([]flight.Record, error) {
	f.callsignCalls++
	return f.summaries, f.summaryErr
}

func (f *fakeProvider) FlightEvents(ctx context.Context, providerFlightID string, eventTypes []string) ([]flight.Record, error) {
	f.eventsCalls++
	f.lastEventID = providerFlightID
	return f.events, f.eventsErr
}

func newTestService(t *testing.T, provider *fakeProvider) *Service {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "console"})
	require.NoError(t, err)
	s := NewService(provider, refdata.Defaults(), log)
	s.now = func() time.Time { return time.Date(2025, 9, 11, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestAnswerHelp(t *testing.T) {
	s := newTestService(t, &fakeProvider{})
	got, err := s.Answer(context.Background(), "help", "")
	require.NoError(t, err)
	assert.Equal(t, "Try:\n• arrivals at XPL\n• departures from XPL top 5\n• AA3165 summary\n• AA3165 events", got)
}

func TestAnswerAirportLiveEmpty(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "arrivals at TPA", "")
	require.NoError(t, err)
	assert.Equal(t, "No inbound flights found for TPA.", got)
	assert.Equal(t, "TPA", provider.lastAirport)
	assert.Equal(t, "inbound", provider.lastDirection)
	assert.Equal(t, 10, provider.lastLimit)
	// Bare 3-letter codes skip the provider lookup
	assert.Zero(t, provider.resolveCalls)
}

func TestAnswerAirportLiveListing(t *testing.T) {
	provider := &fakeProvider{
		live: []flight.Record{
			{"callsign": "AAL3165", "orig_icao": "KMIA", "dest_icao": "KTPA", "datetime_landed": "2025-09-10T14:05:00Z"},
			{"flight": "DL200", "orig_icao": "KATL", "dest_icao": "KTPA", "flight_ended": false},
		},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "arrivals at TPA top 5", "")
	require.NoError(t, err)
	assert.Contains(t, got, "Live inbound flights for TPA (top 2):")
	assert.Contains(t, got, "• AA3165 arrived at KTPA at September 10, 2025 at 10:05 AM")
	assert.Contains(t, got, "• DL200 en route to KTPA")
}

func TestAnswerAirportLiveTruncatesToLimit(t *testing.T) {
	provider := &fakeProvider{
		live: []flight.Record{
			{"flight": "AA1", "dest_icao": "KTPA", "datetime_landed": "2025-09-10T10:00:00Z"},
			{"flight": "AA2", "dest_icao": "KTPA", "datetime_landed": "2025-09-10T11:00:00Z"},
			{"flight": "AA3", "dest_icao": "KTPA", "datetime_landed": "2025-09-10T12:00:00Z"},
		},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "arrivals at TPA top 2", "")
	require.NoError(t, err)
	assert.Contains(t, got, "(top 2):")
	assert.NotContains(t, got, "AA3")
}

func TestEnsureAirportCode(t *testing.T) {
	provider := &fakeProvider{
		airport: flight.Record{"iata": "TPA", "icao": "KTPA"},
	}
	s := newTestService(t, provider)

	// Bare 3-letter codes pass through without a lookup
	code, err := s.ensureAirportCode(context.Background(), "tpa")
	require.NoError(t, err)
	assert.Equal(t, "TPA", code)
	assert.Zero(t, provider.resolveCalls)

	// Anything else resolves through the provider, preferring IATA
	code, err = s.ensureAirportCode(context.Background(), "Tampa International")
	require.NoError(t, err)
	assert.Equal(t, "TPA", code)
	assert.Equal(t, 1, provider.resolveCalls)

	// ICAO-only records fall back to the ICAO code
	provider.airport = flight.Record{"icao": "MHPR"}
	code, err = s.ensureAirportCode(context.Background(), "Palmerola")
	require.NoError(t, err)
	assert.Equal(t, "MHPR", code)
}

func TestAnswerFlightSummaryArrived(t *testing.T) {
	provider := &fakeProvider{
		summaries: []flight.Record{{
			"flight":          "AA3165",
			"orig":            "MIA",
			"dest":            "TPA",
			"datetime_landed": "2025-09-10T14:05:00Z",
		}},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 summary", "")
	require.NoError(t, err)
	assert.Equal(t, "AA3165 arrived at TPA at September 10, 2025 at 10:05 AM", got)
	assert.Equal(t, "AA3165", provider.lastFlightID)
}

func TestAnswerFlightSummaryNotFound(t *testing.T) {
	s := newTestService(t, &fakeProvider{})
	got, err := s.Answer(context.Background(), "AA3165 summary", "")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find a summary for AA3165.", got)
}

func TestAnswerFlightSummaryPicksMostRecentLeg(t *testing.T) {
	provider := &fakeProvider{
		summaries: []flight.Record{
			{"flight": "AA3165", "dest": "MAD", "datetime_landed": "2025-09-09T08:00:00Z"},
			{"flight": "AA3165", "dest": "TPA", "datetime_landed": "2025-09-10T14:05:00Z"},
		},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 summary", "")
	require.NoError(t, err)
	assert.Contains(t, got, "arrived at TPA")
}

func TestAnswerFlightSummaryAirportFilter(t *testing.T) {
	provider := &fakeProvider{
		airport: flight.Record{"iata": "MAD", "icao": "LEMD"},
		summaries: []flight.Record{
			{"flight": "AA3165", "dest_icao": "LEMD", "datetime_landed": "2025-09-09T08:00:00Z"},
			{"flight": "AA3165", "dest_icao": "KTPA", "datetime_landed": "2025-09-10T14:05:00Z"},
		},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 arriving at MAD", "")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.resolveCalls)
	assert.Contains(t, got, "arrived at LEMD")
}

func TestAnswerFlightSummaryFilterFallsBackWhenNothingMatches(t *testing.T) {
	provider := &fakeProvider{
		airport: flight.Record{"iata": "BCN", "icao": "LEBL"},
		summaries: []flight.Record{
			{"flight": "AA3165", "dest_icao": "KTPA", "datetime_landed": "2025-09-10T14:05:00Z"},
		},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 arriving at BCN", "")
	require.NoError(t, err)
	assert.Contains(t, got, "arrived at KTPA")
}

func TestAnswerFlightEventsNoSummary(t *testing.T) {
	s := newTestService(t, &fakeProvider{})
	got, err := s.Answer(context.Background(), "AA3165 events", "")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find recent events for AA3165.", got)
}

func TestAnswerFlightEventsMissingProviderID(t *testing.T) {
	provider := &fakeProvider{
		summaries: []flight.Record{{"flight": "AA3165", "dest": "TPA"}},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 events", "")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't resolve a flight id for AA3165.", got)
	assert.Zero(t, provider.eventsCalls)
}

func TestAnswerFlightEventsListing(t *testing.T) {
	provider := &fakeProvider{
		summaries: []flight.Record{{
			"flight":          "AA3165",
			"fr24_id":         "39c2a1d4",
			"dest_icao":       "KTPA",
			"datetime_landed": "2025-09-10T14:05:00Z",
		}},
		events: []flight.Record{{
			"events": []any{
				map[string]any{
					"type":      "gate_departure",
					"timestamp": "2025-09-10T11:30:00Z",
					"details":   map[string]any{"gate_ident": "D14"},
				},
				map[string]any{
					"type":      "takeoff",
					"timestamp": "2025-09-10T12:00:00Z",
				},
			},
		}},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 events", "")
	require.NoError(t, err)
	assert.Equal(t, "39c2a1d4", provider.lastEventID)
	assert.Contains(t, got, "Recent events for AA3165:")
	assert.Contains(t, got, "• September 10, 2025 at 7:30 AM: gate departure – D14")
	assert.Contains(t, got, "• September 10, 2025 at 8:00 AM: takeoff")
}

func TestAnswerFlightEventsEmptyList(t *testing.T) {
	provider := &fakeProvider{
		summaries: []flight.Record{{"flight": "AA3165", "fr24_id": "39c2a1d4", "dest": "TPA"}},
		events:    []flight.Record{{"events": []any{}}},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 events", "")
	require.NoError(t, err)
	assert.Equal(t, "No events found for AA3165.", got)
}

func TestAnswerUserTimezoneOverride(t *testing.T) {
	provider := &fakeProvider{
		summaries: []flight.Record{{
			"flight":          "AA3165",
			"dest":            "TPA",
			"datetime_landed": "2025-09-10T14:05:00Z",
		}},
	}
	s := newTestService(t, provider)

	got, err := s.Answer(context.Background(), "AA3165 summary", "Europe/Madrid")
	require.NoError(t, err)
	assert.Equal(t, "AA3165 arrived at TPA at September 10, 2025 at 4:05 PM", got)
}

func TestAnswerUnmatchedTextGetsHelp(t *testing.T) {
	s := newTestService(t, &fakeProvider{})
	got, err := s.Answer(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "Try:\n• arrivals at XPL\n• departures from XPL top 5\n• AA3165 summary\n• AA3165 events", got)
}

func TestAnswerProviderErrorPropagates(t *testing.T) {
	provider := &fakeProvider{liveErr: errors.New("provider down")}
	s := newTestService(t, provider)

	_, err := s.Answer(context.Background(), "arrivals at TPA", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}
