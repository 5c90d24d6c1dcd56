// internal/domain/entity/flight.go
package entity

// FlightStatus is the coarse state of a flight derived from its real timestamps
type FlightStatus string

const (
	StatusLanded   FlightStatus = "Landed"
	StatusOnGround FlightStatus = "On Ground"
	StatusInFlight FlightStatus = "In Flight"
	StatusUnknown  FlightStatus = "N/A"
)

// ArrivalSnapshot is one polled observation of a flight arriving at the
// watched airport. Optional upstream fields are pointers; nil means the
// upstream payload did not carry the field.
type ArrivalSnapshot struct {
	FlightID     string
	FlightNumber string
	Registration string

	AirlineName string
	AirlineICAO string
	AirlineIATA string

	AircraftModel string
	AircraftType  string

	OriginName string
	OriginIATA string
	OriginICAO string
	DestName   string
	DestIATA   string
	DestICAO   string

	// Unix seconds, as delivered by the upstream feed.
	ScheduledDeparture *int64
	ScheduledArrival   *int64
	EstimatedDeparture *int64
	EstimatedArrival   *int64
	RealDeparture      *int64
	RealArrival        *int64
}

// Status derives the coarse flight status at the given instant (unix seconds).
// A real arrival means Landed; no real departure means the aircraft is still
// on the ground; a real departure at or before now means it is airborne.
func (s *ArrivalSnapshot) Status(now int64) FlightStatus {
	switch {
	case s.RealArrival != nil:
		return StatusLanded
	case s.RealDeparture == nil:
		return StatusOnGround
	case *s.RealDeparture <= now:
		return StatusInFlight
	default:
		return StatusUnknown
	}
}

// EffectiveArrival returns the estimated arrival when present, otherwise the
// scheduled arrival, otherwise nil.
func (s *ArrivalSnapshot) EffectiveArrival() *int64 {
	if s.EstimatedArrival != nil {
		return s.EstimatedArrival
	}
	return s.ScheduledArrival
}
