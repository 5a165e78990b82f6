// Package bot turns parsed questions into finished natural-language
// answers by orchestrating the flight data provider and the record
// reconciliation layer.
package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yegors/flightqa/internal/flight"
	"github.com/yegors/flightqa/internal/nlu"
	"github.com/yegors/flightqa/internal/refdata"
	"github.com/yegors/flightqa/pkg/logger"
)

// Provider is the slice of the flight data API the bot needs.
type Provider interface {
	ResolveAirport(ctx context.Context, codeOrName string) (flight.Record, error)
	LiveFlights(ctx context.Context, airport, direction string, limit int) ([]flight.Record, error)
	FlightSummary(ctx context.Context, flightID string, from, to time.Time) ([]flight.Record, error)
	FlightSummaryByCallsign(ctx context.Context, callsign string, from, to time.Time) ([]flight.Record, error)
	FlightEvents(ctx context.Context, providerFlightID string, eventTypes []string) ([]flight.Record, error)
}

// Lookup windows around "now" for historical queries.
const (
	summaryLookback  = 2 * 24 * time.Hour
	summaryLookahead = 24 * time.Hour
	eventsLookback   = 3 * 24 * time.Hour
	eventsLookahead  = 24 * time.Hour
)

const helpText = "Try:\n• arrivals at XPL\n• departures from XPL top 5\n• AA3165 summary\n• AA3165 events"

var iataCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Service answers flight questions.
type Service struct {
	provider Provider
	tables   *refdata.Tables
	resolver *flight.Resolver
	enricher *flight.Enricher
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates the bot service.
func NewService(provider Provider, tables *refdata.Tables, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		tables:   tables,
		resolver: flight.NewResolver(tables),
		enricher: flight.NewEnricher(provider, tables, log),
		logger:   log.Named("bot"),
		now:      time.Now,
	}
}

// Answer parses the question and composes a reply. userTZ, when
// non-empty, overrides the airport-derived display timezone. The error
// return carries provider failures; every recognized question that the
// provider can serve yields an answer string instead.
func (s *Service) Answer(ctx context.Context, text, userTZ string) (string, error) {
	q := nlu.Parse(text)
	q.UserTZ = userTZ

	s.logger.Debug("Answering question",
		logger.String("intent", string(q.Intent)),
		logger.String("airport", q.Airport),
		logger.String("flight_id", q.FlightID),
	)

	switch {
	case q.Intent == nlu.IntentHelp:
		return helpText, nil
	case q.Intent == nlu.IntentAirportLive && q.Airport != "":
		return s.answerAirportLive(ctx, q)
	case q.Intent == nlu.IntentFlightSummary && q.FlightID != "":
		return s.answerFlightSummary(ctx, q)
	case q.Intent == nlu.IntentFlightEvents && q.FlightID != "":
		return s.answerFlightEvents(ctx, q)
	default:
		return "Sorry, I didn't understand that.", nil
	}
}

func (s *Service) answerAirportLive(ctx context.Context, q nlu.Query) (string, error) {
	code, err := s.ensureAirportCode(ctx, q.Airport)
	if err != nil {
		return "", err
	}
	tz := s.resolver.BestZone(q.UserTZ, "", code)

	legs, err := s.provider.LiveFlights(ctx, code, string(q.Direction), q.Limit)
	if err != nil {
		return "", err
	}
	if len(legs) == 0 {
		return fmt.Sprintf("No %s flights found for %s.", q.Direction, code), nil
	}

	if len(legs) > q.Limit {
		legs = legs[:q.Limit]
	}
	lines := make([]string, 0, len(legs))
	for _, leg := range legs {
		d := s.enricher.Enrich(ctx, leg)
		lines = append(lines, "• "+s.lineForLeg(d, q.Direction, tz))
	}
	header := fmt.Sprintf("Live %s flights for %s (top %d):\n", q.Direction, code, len(lines))
	return header + strings.Join(lines, "\n"), nil
}

func (s *Service) answerFlightSummary(ctx context.Context, q nlu.Query) (string, error) {
	now := s.now()
	legs, err := s.provider.FlightSummary(ctx, q.FlightID, now.Add(-summaryLookback), now.Add(summaryLookahead))
	if err != nil {
		return "", err
	}
	if len(legs) == 0 {
		return fmt.Sprintf("I couldn't find a summary for %s.", q.FlightID), nil
	}

	if q.Airport != "" {
		targets, err := s.airportTargets(ctx, q.Airport)
		if err != nil {
			return "", err
		}
		legs = flight.Filter(legs, targets, string(q.Direction))
	}

	best, _ := flight.MostRelevant(legs)
	dest := flight.FirstString(best, "dest_icao", "dest", "to_icao", "to")
	tz := s.resolver.BestZone(q.UserTZ, "", dest)
	return s.lineForLeg(best, q.Direction, tz), nil
}

func (s *Service) answerFlightEvents(ctx context.Context, q nlu.Query) (string, error) {
	now := s.now()
	legs, err := s.provider.FlightSummary(ctx, q.FlightID, now.Add(-eventsLookback), now.Add(eventsLookahead))
	if err != nil {
		return "", err
	}
	if len(legs) == 0 {
		return fmt.Sprintf("I couldn't find recent events for %s.", q.FlightID), nil
	}

	best, _ := flight.MostRelevant(legs)
	providerID := strings.TrimSpace(flight.FirstString(best, "fr24_id", "fr24Id", "id"))
	if providerID == "" {
		return fmt.Sprintf("I couldn't resolve a flight id for %s.", q.FlightID), nil
	}

	dest := flight.FirstString(best, "dest_icao", "dest", "to_icao", "to")
	tz := s.resolver.BestZone(q.UserTZ, "", dest)

	containers, err := s.provider.FlightEvents(ctx, providerID, []string{"all"})
	if err != nil {
		return "", err
	}
	var events []any
	if len(containers) > 0 {
		events = eventList(flight.First(containers[0], "events"))
	}
	if len(events) == 0 {
		return fmt.Sprintf("No events found for %s.", q.FlightID), nil
	}

	if len(events) > q.Limit {
		events = events[:q.Limit]
	}
	lines := make([]string, 0, len(events))
	for _, item := range events {
		lines = append(lines, s.lineForEvent(item, tz))
	}
	return fmt.Sprintf("Recent events for %s:\n", q.FlightID) + strings.Join(lines, "\n"), nil
}

// lineForLeg renders the single-line description of a leg, phrased for
// the direction of travel the question implied.
func (s *Service) lineForLeg(rec flight.Record, direction nlu.Direction, tz string) string {
	id := flight.DisplayID(s.tables, rec)
	orig := flight.FirstString(rec, "orig_icao", "orig", "from_icao", "from")
	dest := flight.FirstString(rec, "dest_icao", "dest", "to_icao", "to")
	if orig == "" {
		orig = "?"
	}
	if dest == "" {
		dest = "?"
	}

	stage, when := flight.Infer(rec)
	whenTxt := ""
	if when != nil {
		whenTxt = s.resolver.FormatLocal(when, tz)
	}

	at := ""
	if whenTxt != "" {
		at = " at " + whenTxt
	}

	// En route lines stay short for inbound and mixed queries; only
	// outbound answers carry the departure time.
	switch direction {
	case nlu.DirectionOutbound:
		switch stage {
		case flight.StageArrived:
			return fmt.Sprintf("%s arrived at %s%s", id, dest, at)
		case flight.StageEnroute:
			return fmt.Sprintf("%s departing from %s%s", id, orig, at)
		default:
			return fmt.Sprintf("%s departing from %s", id, orig)
		}
	default:
		switch stage {
		case flight.StageArrived:
			return fmt.Sprintf("%s arrived at %s%s", id, dest, at)
		case flight.StageEnroute:
			return fmt.Sprintf("%s en route to %s", id, dest)
		default:
			return fmt.Sprintf("%s arriving at %s", id, dest)
		}
	}
}

// lineForEvent renders one event bullet: local timestamp, event type
// with underscores spaced out, and the first interesting detail.
func (s *Service) lineForEvent(item any, tz string) string {
	eventType := flight.FirstString(item, "type")
	if eventType == "" {
		eventType = "event"
	}
	eventType = strings.ReplaceAll(eventType, "_", " ")

	tsTxt := s.resolver.FormatLocal(flight.First(item, "timestamp"), tz)

	line := fmt.Sprintf("• %s: %s", tsTxt, eventType)
	details := flight.First(item, "details")
	if details != nil {
		if det := flight.First(details, "gate_ident", "takeoff_runway", "landing_runway",
			"entered_airspace", "exited_airspace"); det != nil {
			line += fmt.Sprintf(" – %v", det)
		}
	}
	return line
}

// ensureAirportCode turns an airport hint into a query code: a bare
// three-letter code passes through uppercased, anything else goes
// through the provider's airport lookup, preferring the IATA code.
func (s *Service) ensureAirportCode(ctx context.Context, hint string) (string, error) {
	hint = strings.TrimSpace(hint)
	if iataCodePattern.MatchString(hint) {
		return strings.ToUpper(hint), nil
	}
	info, err := s.provider.ResolveAirport(ctx, hint)
	if err != nil {
		return "", fmt.Errorf("failed to resolve airport %q: %w", hint, err)
	}
	if iata := flight.FirstString(info, "iata", "iata_code"); iata != "" {
		return strings.ToUpper(iata), nil
	}
	if icao := flight.FirstString(info, "icao", "icao_code"); icao != "" {
		return strings.ToUpper(icao), nil
	}
	return strings.ToUpper(hint), nil
}

// airportTargets expands an airport hint into the set of codes a leg
// might carry for it: the resolved IATA and ICAO forms plus the
// literal hint.
func (s *Service) airportTargets(ctx context.Context, hint string) (map[string]bool, error) {
	info, err := s.provider.ResolveAirport(ctx, hint)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve airport %q: %w", hint, err)
	}
	targets := map[string]bool{}
	for _, code := range []string{
		flight.FirstString(info, "iata", "iata_code"),
		flight.FirstString(info, "icao", "icao_code"),
		hint,
	} {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			targets[code] = true
		}
	}
	return targets, nil
}

// eventList normalizes the shapes an event container's "events" field
// shows up in.
func eventList(v any) []any {
	switch list := v.(type) {
	case nil:
		return nil
	case []any:
		return list
	case []flight.Record:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out
	case []map[string]any:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out
	}
	return nil
}
