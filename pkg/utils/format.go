// pkg/utils/format.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"planewatch-service/internal/domain/entity"
)

const notAvailable = "N/A"

// NextFlight is the aircraft's next departure out of the watched airport.
type NextFlight struct {
	Departure *int64
	DestName  string
	DestIATA  string
	DestICAO  string
}

// FlightDetailsInput carries everything the notification text is built from.
type FlightDetailsInput struct {
	Snapshot      *entity.ArrivalSnapshot
	Rule          entity.NotificationRule
	Status        entity.FlightStatus
	ArrivalPeriod string
	NextFlight    *NextFlight
	Location      *time.Location
}

// NextDeparture scans an aircraft's flight list for its next departure out of
// the given airport: the first listed flight qualifies only when it departs
// from this airport and has not actually departed yet.
func NextDeparture(details *entity.RegistrationDetails, airportIATA string) *NextFlight {
	if details == nil {
		return nil
	}
	for i := range details.Flights {
		flight := &details.Flights[i]
		if flight.OriginIATA == "" {
			continue
		}
		if flight.OriginIATA != airportIATA || flight.RealDeparture != nil {
			return nil
		}
		return &NextFlight{
			Departure: flight.ScheduledDeparture,
			DestName:  flight.DestName,
			DestIATA:  flight.DestIATA,
			DestICAO:  flight.DestICAO,
		}
	}
	return nil
}

// FormatFlightDetails renders the HTML notification text. Absent fields
// render as N/A rather than being dropped, so every notification has the
// same shape.
func FormatFlightDetails(in FlightDetailsInput) string {
	snap := in.Snapshot
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b>\n", in.Rule)
	fmt.Fprintf(&b, "  Flight number: %s\n", orNA(snap.FlightNumber))
	fmt.Fprintf(&b, "  Dep. Airport: %s\n", airportLine(snap.OriginName, snap.OriginIATA, snap.OriginICAO))
	fmt.Fprintf(&b, "  Status: %s\n", in.Status)
	if snap.AircraftModel != "" || snap.AircraftType != "" {
		fmt.Fprintf(&b, "  Aircraft Model: %s (%s)\n", orNA(snap.AircraftModel), orNA(snap.AircraftType))
	} else {
		fmt.Fprintf(&b, "  Aircraft Model: %s\n", notAvailable)
	}
	fmt.Fprintf(&b, "  Registration: %s\n", orNA(snap.Registration))
	if snap.AirlineName != "" {
		fmt.Fprintf(&b, "  Airline: %s (%s/%s)\n\n", snap.AirlineName, orNA(snap.AirlineIATA), orNA(snap.AirlineICAO))
	} else {
		fmt.Fprintf(&b, "  Airline: %s\n\n", notAvailable)
	}

	b.WriteString("<b>Arrival Details:</b>\n")
	fmt.Fprintf(&b, "  Arrival Period: %s\n", orNA(in.ArrivalPeriod))
	fmt.Fprintf(&b, "  Scheduled Arrival: %s\n", localInstant(snap.ScheduledArrival, in.Location))
	fmt.Fprintf(&b, "  Estimated Arrival: %s\n", localInstant(snap.EstimatedArrival, in.Location))

	if in.NextFlight != nil {
		b.WriteString("\n<b>Next Flight Details:</b>\n")
		fmt.Fprintf(&b, "  Est. Departure: %s\n", localInstant(in.NextFlight.Departure, in.Location))
		fmt.Fprintf(&b, "  Dest. Airport: %s\n", airportLine(in.NextFlight.DestName, in.NextFlight.DestIATA, in.NextFlight.DestICAO))
	}

	if link := flightLink(snap); link != "" {
		fmt.Fprintf(&b, "\n%s\n", link)
	}
	return b.String()
}

// flightLink builds the flightradar24 deep link: the live flight page when
// the feed carries a flight id, the schedule page otherwise.
func flightLink(snap *entity.ArrivalSnapshot) string {
	switch {
	case snap.FlightID != "":
		return "https://www.flightradar24.com/" + snap.FlightID
	case snap.FlightNumber != "":
		return "https://www.flightradar24.com/data/flights/" + snap.FlightNumber
	default:
		return ""
	}
}

func airportLine(name, iata, icao string) string {
	if name == "" {
		return notAvailable
	}
	return fmt.Sprintf("%s (%s/%s)", name, orNA(iata), orNA(icao))
}

// localInstant renders a unix instant in airport-local time as e.g.
// "Mon 15:04 (Local)".
func localInstant(ts *int64, loc *time.Location) string {
	if ts == nil || loc == nil {
		return notAvailable
	}
	return time.Unix(*ts, 0).In(loc).Format("Mon 15:04") + " (Local)"
}

func orNA(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}
