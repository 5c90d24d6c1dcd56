// internal/interface/repository/flightradar_repo.go
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
)

const defaultFlightRadarBaseURL = "https://api.flightradar24.com/common/v1"

// FlightRadarRepository fetches airport boards and aircraft details from the
// flightradar24 JSON feed.
type FlightRadarRepository struct {
	logger  logger.Logger
	baseURL string
	client  *http.Client
}

// NewFlightRadarRepository creates a flightradar24 client. An empty baseURL
// selects the public endpoint.
func NewFlightRadarRepository(baseURL string, logger logger.Logger) repository.ArrivalRepository {
	if baseURL == "" {
		baseURL = defaultFlightRadarBaseURL
	}
	return &FlightRadarRepository{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Feed payload shapes. Every leaf the upstream may omit is a pointer so the
// mapping can tell absent from zero.
type fr24Code struct {
	IATA string `json:"iata"`
	ICAO string `json:"icao"`
}

type fr24Airline struct {
	Name string    `json:"name"`
	Code *fr24Code `json:"code"`
}

type fr24Aircraft struct {
	Model struct {
		Code string `json:"code"`
		Text string `json:"text"`
	} `json:"model"`
	Registration string `json:"registration"`
}

type fr24AirportRef struct {
	Name string   `json:"name"`
	Code fr24Code `json:"code"`
}

type fr24TimePair struct {
	Departure *int64 `json:"departure"`
	Arrival   *int64 `json:"arrival"`
}

type fr24Times struct {
	Scheduled fr24TimePair `json:"scheduled"`
	Estimated fr24TimePair `json:"estimated"`
	Real      fr24TimePair `json:"real"`
}

type fr24Flight struct {
	Identification *struct {
		ID     *string `json:"id"`
		Number struct {
			Default *string `json:"default"`
		} `json:"number"`
	} `json:"identification"`
	Airline  *fr24Airline  `json:"airline"`
	Owner    *fr24Airline  `json:"owner"`
	Aircraft *fr24Aircraft `json:"aircraft"`
	Airport  struct {
		Origin      *fr24AirportRef `json:"origin"`
		Destination *fr24AirportRef `json:"destination"`
	} `json:"airport"`
	Time *fr24Times `json:"time"`
}

type fr24AirportResponse struct {
	Result struct {
		Response struct {
			Airport struct {
				PluginData struct {
					Details struct {
						Name string   `json:"name"`
						Code fr24Code `json:"code"`
						// nested like the feed: timezone.name, position.latitude/longitude
						Timezone struct {
							Name string `json:"name"`
						} `json:"timezone"`
						Position struct {
							Latitude  float64 `json:"latitude"`
							Longitude float64 `json:"longitude"`
						} `json:"position"`
					} `json:"details"`
					Schedule struct {
						Arrivals struct {
							Page struct {
								Total int `json:"total"`
							} `json:"page"`
							Data []struct {
								Flight fr24Flight `json:"flight"`
							} `json:"data"`
						} `json:"arrivals"`
					} `json:"schedule"`
				} `json:"pluginData"`
			} `json:"airport"`
		} `json:"response"`
	} `json:"result"`
}

type fr24FlightListResponse struct {
	Result struct {
		Response struct {
			AircraftImages []struct {
				Images struct {
					Medium []struct {
						Link string `json:"link"`
					} `json:"medium"`
				} `json:"images"`
			} `json:"aircraftImages"`
			Data []struct {
				Flight fr24Flight `json:"flight"`
			} `json:"data"`
		} `json:"response"`
	} `json:"result"`
}

// AirportDetails resolves the airport's identity, timezone and coordinates.
func (r *FlightRadarRepository) AirportDetails(ctx context.Context, code string) (*entity.Airport, error) {
	var payload fr24AirportResponse
	if err := r.get(ctx, r.airportURL(code, 0), &payload); err != nil {
		return nil, err
	}

	details := payload.Result.Response.Airport.PluginData.Details
	if details.Name == "" {
		return nil, fmt.Errorf("airport %s not found in feed", code)
	}

	return &entity.Airport{
		Name:      details.Name,
		IATA:      details.Code.IATA,
		ICAO:      details.Code.ICAO,
		Timezone:  details.Timezone.Name,
		Latitude:  details.Position.Latitude,
		Longitude: details.Position.Longitude,
	}, nil
}

// AirportArrivals returns one page of the arrival board and the total page
// count. Negative pages walk the arrival history, oldest direction first.
func (r *FlightRadarRepository) AirportArrivals(ctx context.Context, code string, page int) ([]*entity.ArrivalSnapshot, int, error) {
	var payload fr24AirportResponse
	if err := r.get(ctx, r.airportURL(code, page), &payload); err != nil {
		return nil, 0, err
	}

	arrivals := payload.Result.Response.Airport.PluginData.Schedule.Arrivals
	snapshots := make([]*entity.ArrivalSnapshot, 0, len(arrivals.Data))
	for i := range arrivals.Data {
		snapshots = append(snapshots, mapFlight(&arrivals.Data[i].Flight))
	}
	return snapshots, arrivals.Page.Total, nil
}

// RegistrationDetails looks up an aircraft's photo and upcoming flights.
func (r *FlightRadarRepository) RegistrationDetails(ctx context.Context, registration string) (*entity.RegistrationDetails, error) {
	query := url.Values{}
	query.Set("query", registration)
	query.Set("fetchBy", "reg")
	endpoint := fmt.Sprintf("%s/flight/list.json?%s", r.baseURL, query.Encode())

	var payload fr24FlightListResponse
	if err := r.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	details := &entity.RegistrationDetails{Registration: registration}
	for _, img := range payload.Result.Response.AircraftImages {
		if len(img.Images.Medium) > 0 && img.Images.Medium[0].Link != "" {
			details.PhotoURL = img.Images.Medium[0].Link
			break
		}
	}
	for i := range payload.Result.Response.Data {
		details.Flights = append(details.Flights, *mapFlight(&payload.Result.Response.Data[i].Flight))
	}
	return details, nil
}

func (r *FlightRadarRepository) airportURL(code string, page int) string {
	query := url.Values{}
	query.Set("code", code)
	query.Add("plugin[]", "details")
	query.Add("plugin[]", "schedule")
	query.Set("plugin-setting[schedule][mode]", "arrivals")
	query.Set("limit", "100")
	if page != 0 {
		query.Set("page", strconv.Itoa(page))
	}
	return fmt.Sprintf("%s/airport.json?%s", r.baseURL, query.Encode())
}

func (r *FlightRadarRepository) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "planewatch-service")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode feed response: %w", err)
	}
	return nil
}

// mapFlight converts a feed flight row into an arrival snapshot, keeping
// absent fields absent.
func mapFlight(f *fr24Flight) *entity.ArrivalSnapshot {
	snap := &entity.ArrivalSnapshot{}

	if f.Identification != nil {
		if f.Identification.ID != nil {
			snap.FlightID = *f.Identification.ID
		}
		if f.Identification.Number.Default != nil {
			snap.FlightNumber = *f.Identification.Number.Default
		}
	}
	if f.Airline != nil {
		snap.AirlineName = f.Airline.Name
	}
	// Rare plane and type watchlist matching keys off the operating carrier.
	if f.Owner != nil && f.Owner.Code != nil {
		snap.AirlineICAO = f.Owner.Code.ICAO
		snap.AirlineIATA = f.Owner.Code.IATA
	}
	if f.Aircraft != nil {
		snap.Registration = f.Aircraft.Registration
		snap.AircraftType = f.Aircraft.Model.Code
		snap.AircraftModel = f.Aircraft.Model.Text
	}
	if f.Airport.Origin != nil {
		snap.OriginName = f.Airport.Origin.Name
		snap.OriginIATA = f.Airport.Origin.Code.IATA
		snap.OriginICAO = f.Airport.Origin.Code.ICAO
	}
	if f.Airport.Destination != nil {
		snap.DestName = f.Airport.Destination.Name
		snap.DestIATA = f.Airport.Destination.Code.IATA
		snap.DestICAO = f.Airport.Destination.Code.ICAO
	}
	if f.Time != nil {
		snap.ScheduledDeparture = f.Time.Scheduled.Departure
		snap.ScheduledArrival = f.Time.Scheduled.Arrival
		snap.EstimatedDeparture = f.Time.Estimated.Departure
		snap.EstimatedArrival = f.Time.Estimated.Arrival
		snap.RealDeparture = f.Time.Real.Departure
		snap.RealArrival = f.Time.Real.Arrival
	}
	return snap
}
