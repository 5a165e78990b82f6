// Package flightdata is the HTTP client for the flight data provider
// API: live positions, flight summaries, flight events, and airport
// lookups. All responses come back as loosely-typed records so the
// reconciliation layer can deal with the provider's uneven field
// naming.
package flightdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yegors/flightqa/internal/flight"
	"github.com/yegors/flightqa/pkg/logger"
)

// windowLayout is the zone-less UTC shape the provider requires for
// time window parameters.
const windowLayout = "2006-01-02T15:04:05"

// Client talks to the flight data provider API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logger.Logger
}

// NewClient creates a new flight data client. baseURL carries no
// trailing slash; token is the bearer credential.
func NewClient(baseURL, token string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("flightdata"),
	}
}

// ResolveAirport looks up an airport by code or name and returns its
// static record (codes, name, timezone).
func (c *Client) ResolveAirport(ctx context.Context, codeOrName string) (flight.Record, error) {
	path := "/static/airports/" + url.PathEscape(strings.TrimSpace(codeOrName)) + "/light"
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse airport response: %w", err)
	}
	if envelope.Data != nil {
		return flight.Record(envelope.Data), nil
	}

	// Some deployments return the record bare, without the envelope
	var bare map[string]any
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse airport response: %w", err)
	}
	return flight.Record(bare), nil
}

// LiveFlights fetches current flight positions touching an airport.
// direction must be inbound, outbound, or both.
func (c *Client) LiveFlights(ctx context.Context, airport, direction string, limit int) ([]flight.Record, error) {
	switch direction {
	case "inbound", "outbound", "both":
	default:
		return nil, fmt.Errorf("invalid direction %q: must be inbound, outbound, or both", direction)
	}

	query := url.Values{}
	query.Set("airports", direction+":"+strings.ToUpper(strings.TrimSpace(airport)))
	query.Set("limit", strconv.Itoa(limit))
	return c.getList(ctx, "/live/flight-positions/light", query)
}

// FlightSummary fetches summary rows for a flight number inside a time
// window.
func (c *Client) FlightSummary(ctx context.Context, flightID string, from, to time.Time) ([]flight.Record, error) {
	query := url.Values{}
	query.Set("flights", strings.ToUpper(strings.TrimSpace(flightID)))
	query.Set("flight_datetime_from", formatWindow(from))
	query.Set("flight_datetime_to", formatWindow(to))
	return c.getList(ctx, "/flight-summary/light", query)
}

// FlightSummaryByCallsign is FlightSummary keyed by callsign instead
// of flight number, for legs whose carrier code has no known mapping.
func (c *Client) FlightSummaryByCallsign(ctx context.Context, callsign string, from, to time.Time) ([]flight.Record, error) {
	query := url.Values{}
	query.Set("callsigns", strings.ToUpper(strings.TrimSpace(callsign)))
	query.Set("flight_datetime_from", formatWindow(from))
	query.Set("flight_datetime_to", formatWindow(to))
	return c.getList(ctx, "/flight-summary/light", query)
}

// FlightEvents fetches event containers for a provider flight id.
// eventTypes defaults to all when empty.
func (c *Client) FlightEvents(ctx context.Context, providerFlightID string, eventTypes []string) ([]flight.Record, error) {
	if len(eventTypes) == 0 {
		eventTypes = []string{"all"}
	}
	query := url.Values{}
	query.Set("flight_ids", strings.TrimSpace(providerFlightID))
	query.Set("event_types", strings.Join(eventTypes, ","))
	return c.getList(ctx, "/historic/flight-events/light", query)
}

// getList performs a GET and decodes the standard {"data": [...]}
// envelope.
func (c *Client) getList(ctx context.Context, path string, query url.Values) ([]flight.Record, error) {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []flight.Record `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return envelope.Data, nil
}

// get executes a single authenticated request and maps the provider's
// error statuses onto typed errors.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.logger.Debug("Fetching flight data",
		logger.String("path", path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{Status: resp.StatusCode}
	case http.StatusBadRequest:
		return nil, &BadRequestError{Detail: errorDetail(body)}
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// errorDetail pulls a human-readable message out of an error body when
// there is one.
func errorDetail(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return strings.TrimSpace(string(body))
}

// formatWindow renders a window boundary in the provider's required
// zone-less UTC shape.
func formatWindow(t time.Time) string {
	return t.UTC().Format(windowLayout)
}
