// internal/domain/entity/airport.go
package entity

// Airport holds the watched airport's identity and location, resolved once
// from the upstream feed at startup.
type Airport struct {
	Name      string
	IATA      string
	ICAO      string
	Timezone  string
	Latitude  float64
	Longitude float64
}

// RegistrationDetails is the per-aircraft lookup used after a notification
// wins the cascade: a display photo plus the aircraft's upcoming flights.
type RegistrationDetails struct {
	Registration string
	PhotoURL     string
	Flights      []ArrivalSnapshot
}
