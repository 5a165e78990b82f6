package flight

import (
	"context"
	"strings"
	"time"

	"github.com/yegors/flightqa/internal/refdata"
	"github.com/yegors/flightqa/pkg/logger"
)

// SummaryFetcher is the slice of the data provider enrichment needs.
type SummaryFetcher interface {
	FlightSummary(ctx context.Context, flightID string, from, to time.Time) ([]Record, error)
	FlightSummaryByCallsign(ctx context.Context, callsign string, from, to time.Time) ([]Record, error)
}

// Enrichment looks this far back and forward for the matching summary.
const (
	enrichLookback  = 48 * time.Hour
	enrichLookahead = 24 * time.Hour
)

// Enricher fills the timing and routing gaps in live position rows by
// issuing a secondary summary lookup. Enrichment is best effort: any
// provider failure leaves the leg as it was.
type Enricher struct {
	fetcher SummaryFetcher
	tables  *refdata.Tables
	logger  *logger.Logger
	now     func() time.Time
}

// NewEnricher builds an Enricher over the given provider slice and
// reference tables.
func NewEnricher(fetcher SummaryFetcher, tables *refdata.Tables, log *logger.Logger) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		tables:  tables,
		logger:  log.Named("enrich"),
		now:     time.Now,
	}
}

// Enrich returns a reconciled copy of the leg with any absent timing
// and routing fields filled in from the most relevant summary row. Legs
// that already carry a landing or arrival time are returned as-is
// (minus the copy), so repeated calls never issue duplicate lookups.
// Fields already populated on the leg are never overwritten.
func (e *Enricher) Enrich(ctx context.Context, leg any) Record {
	d := AsRecord(leg)
	if First(d, "datetime_landed", "datetime_arrival") != nil {
		return d
	}

	callsign := strings.TrimSpace(FirstString(d, "callsign"))
	flightID := strings.TrimSpace(FirstString(d, "flight"))
	if flightID == "" {
		flightID = CallsignToIATA(e.tables, callsign)
	}

	from := e.now().Add(-enrichLookback)
	to := e.now().Add(enrichLookahead)

	var rows []Record
	var err error
	switch {
	case callsign != "":
		rows, err = e.fetcher.FlightSummaryByCallsign(ctx, callsign, from, to)
	case flightID != "":
		rows, err = e.fetcher.FlightSummary(ctx, flightID, from, to)
	default:
		return d
	}
	if err != nil {
		e.logger.Debug("summary enrichment skipped",
			logger.String("callsign", callsign),
			logger.String("flight", flightID),
			logger.Error(err))
		return d
	}

	best, ok := MostRelevant(rows)
	if !ok {
		return d
	}
	for _, key := range mergeKeys {
		if present(d[key]) {
			continue
		}
		if v, found := lookup(best, key); found && present(v) {
			d[key] = v
		}
	}
	return d
}
