package flight

// Stage is the inferred lifecycle stage of a flight leg.
type Stage string

const (
	StageArrived   Stage = "arrived"
	StageEnroute   Stage = "enroute"
	StageScheduled Stage = "scheduled"
)

// Infer derives the lifecycle stage of a leg and the raw timestamp most
// relevant to that stage. Rules, in order:
//
//	any landing or arrival time present     -> arrived, with that time
//	flight_ended explicitly false           -> enroute, with the takeoff time
//	takeoff or first-seen time present      -> enroute, with that time
//	otherwise                               -> scheduled, no time
//
// The returned timestamp is whatever the record held (string or
// time.Time); nil means no relevant time is known.
func Infer(rec any) (Stage, any) {
	landed := First(rec, "datetime_landed", "datetime_landing", "datetime_arrival")
	takeoff := First(rec, "datetime_takeoff", "first_seen")

	if landed != nil {
		return StageArrived, landed
	}
	if ended, ok := First(rec, "flight_ended").(bool); ok && !ended {
		return StageEnroute, takeoff
	}
	if takeoff != nil {
		return StageEnroute, takeoff
	}
	return StageScheduled, nil
}
