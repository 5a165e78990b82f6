package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferArrived(t *testing.T) {
	rec := Record{
		"datetime_takeoff": "2025-09-10T12:00:00Z",
		"datetime_landed":  "2025-09-10T14:05:00Z",
	}
	stage, when := Infer(rec)
	assert.Equal(t, StageArrived, stage)
	assert.Equal(t, "2025-09-10T14:05:00Z", when)
}

func TestInferArrivalEstimateCountsAsArrived(t *testing.T) {
	stage, when := Infer(Record{"datetime_arrival": "2025-09-10T14:05:00Z"})
	assert.Equal(t, StageArrived, stage)
	assert.Equal(t, "2025-09-10T14:05:00Z", when)
}

func TestInferEnrouteByFlightEnded(t *testing.T) {
	rec := Record{
		"flight_ended":     false,
		"datetime_takeoff": "2025-09-10T12:00:00Z",
	}
	stage, when := Infer(rec)
	assert.Equal(t, StageEnroute, stage)
	assert.Equal(t, "2025-09-10T12:00:00Z", when)
}

func TestInferEnrouteByFirstSeen(t *testing.T) {
	stage, when := Infer(Record{"first_seen": "2025-09-10T12:30:00Z"})
	assert.Equal(t, StageEnroute, stage)
	assert.Equal(t, "2025-09-10T12:30:00Z", when)
}

func TestInferEnrouteWithoutTakeoffTime(t *testing.T) {
	stage, when := Infer(Record{"flight_ended": false})
	assert.Equal(t, StageEnroute, stage)
	assert.Nil(t, when)
}

func TestInferScheduled(t *testing.T) {
	stage, when := Infer(Record{"flight": "AA3165"})
	assert.Equal(t, StageScheduled, stage)
	assert.Nil(t, when)
}
