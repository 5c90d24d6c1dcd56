// internal/usecase/active_window.go
package usecase

import (
	"time"

	"planewatch-service/internal/domain/entity"
)

// Time-of-day modes for a rule's active window. Any other value notifies all
// day, matching how the filter files have always been written.
const (
	TimeModeOff      = "Off"
	TimeModeDaylight = "Daylight"
)

// RuleWindow is one rule's debounce threshold and active-time gating.
type RuleWindow struct {
	// Threshold is the minimum time between two notifications for the same
	// key. A sighting at exactly Threshold after the last one notifies.
	Threshold time.Duration
	// Days holds weekday abbreviations (Mon, Tue, ...); empty means every day.
	Days []string
	// TimeMode is Off, Daylight or all-day.
	TimeMode string
}

// inActiveWindow decides whether a gated rule applies to this arrival at all.
// It must be consulted before any history mutation: when it returns false the
// rule behaves as if the poll never happened.
func (p *ArrivalProcessor) inActiveWindow(window RuleWindow, snap *entity.ArrivalSnapshot) bool {
	if window.TimeMode == TimeModeOff {
		return false
	}

	// Weekday check against the scheduled arrival in airport-local time. A
	// missing scheduled arrival skips the check rather than failing it.
	if len(window.Days) > 0 && snap.ScheduledArrival != nil {
		day := time.Unix(*snap.ScheduledArrival, 0).In(p.location).Format("Mon")
		if !contains(window.Days, day) {
			return false
		}
	}

	if window.TimeMode == TimeModeDaylight {
		return p.isDaylightArrival(snap)
	}
	return true
}

// isDaylightArrival reports whether the effective arrival instant (estimated
// when present, else scheduled) falls strictly between sunrise and sunset at
// the airport. Indeterminate arrivals are not daylight arrivals.
func (p *ArrivalProcessor) isDaylightArrival(snap *entity.ArrivalSnapshot) bool {
	arrival := snap.EffectiveArrival()
	if arrival == nil {
		return false
	}

	localDate := time.Unix(*arrival, 0).In(p.location)
	rise, set, err := p.sunTimes.SunriseSunset(p.airport.Latitude, p.airport.Longitude, localDate)
	if err != nil {
		p.logger.Warn("failed to compute sun times", "date", localDate.Format("2006-01-02"), "error", err)
		return false
	}

	return *arrival > rise.Unix() && *arrival < set.Unix()
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
