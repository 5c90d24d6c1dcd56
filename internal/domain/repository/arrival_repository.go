// internal/domain/repository/arrival_repository.go
package repository

import (
	"context"

	"planewatch-service/internal/domain/entity"
)

// ArrivalRepository is the upstream flight tracking feed.
type ArrivalRepository interface {
	// AirportDetails resolves the watched airport's identity and location.
	AirportDetails(ctx context.Context, code string) (*entity.Airport, error)
	// AirportArrivals returns one page of the airport's arrival board plus
	// the total number of pages. Negative pages address the arrival history,
	// which the rare plane seeder walks.
	AirportArrivals(ctx context.Context, code string, page int) ([]*entity.ArrivalSnapshot, int, error)
	// RegistrationDetails looks up a photo and upcoming flights for an
	// aircraft. A nil result means the upstream knows nothing about it.
	RegistrationDetails(ctx context.Context, registration string) (*entity.RegistrationDetails, error)
}
