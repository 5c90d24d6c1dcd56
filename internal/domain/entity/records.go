// internal/domain/entity/records.go
package entity

// All persisted rows live in flat CSV tables with a header row; the csv tags
// mirror the original column names so existing filter files keep working.
// Timestamps are unix seconds.

// ExclusionEntry is an aircraft the operator never wants to hear about.
type ExclusionEntry struct {
	Airline      string `csv:"Airline"`
	Registration string `csv:"Registration"`
	Description  string `csv:"Description"`
}

// LiveryHistory debounces special livery notifications per registration.
type LiveryHistory struct {
	Registration string `csv:"Registration"`
	Time         int64  `csv:"Time"`
}

// RarePlaneHistory debounces rare plane notifications per airline and type.
type RarePlaneHistory struct {
	Airline      string `csv:"Airline"`
	AircraftType string `csv:"Aircraft Type"`
	Time         int64  `csv:"Time"`
}

// RegoWatchlistEntry is an operator-added registration of interest.
// Time is zero until the first match populates it.
type RegoWatchlistEntry struct {
	Airline      string `csv:"Airline"`
	Registration string `csv:"Registration"`
	Description  string `csv:"Description"`
	Time         int64  `csv:"Time"`
}

// TypeWatchlistEntry is an operator-added airline and aircraft type pair.
type TypeWatchlistEntry struct {
	Airline      string `csv:"Airline"`
	AircraftType string `csv:"Aircraft Type"`
	Time         int64  `csv:"Time"`
}

// StatusRecord remembers the last coarse status of an aircraft that was
// notified while on the ground, so a later departure can be detected.
type StatusRecord struct {
	Registration string `csv:"Registration"`
	FlightStatus string `csv:"Flight Status"`
	Time         int64  `csv:"Time"`
}
