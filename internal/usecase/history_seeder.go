// internal/usecase/history_seeder.go
package usecase

import (
	"context"

	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
)

// HistorySeeder back-fills the rare plane history from the airport's recent
// arrival history on a fresh installation, so the rare plane rule does not
// fire for every airline/type pair it has simply never recorded.
type HistorySeeder struct {
	arrivalRepo repository.ArrivalRepository
	rareHistory repository.RarePlaneHistoryRepository
	logger      logger.Logger
	airportCode string
}

// NewHistorySeeder creates a history seeder for one airport.
func NewHistorySeeder(
	arrivalRepo repository.ArrivalRepository,
	rareHistory repository.RarePlaneHistoryRepository,
	logger logger.Logger,
	airportCode string,
) *HistorySeeder {
	return &HistorySeeder{
		arrivalRepo: arrivalRepo,
		rareHistory: rareHistory,
		logger:      logger,
		airportCode: airportCode,
	}
}

// Seed walks every page of the arrival history and inserts one entry per
// airline/type pair, earliest occurrence first. It only runs when the store
// does not exist yet. An upstream failure aborts seeding; a partially seeded
// store is acceptable, the rule just treats unseeded pairs as first sightings.
func (s *HistorySeeder) Seed(ctx context.Context) error {
	exists, err := s.rareHistory.Exists()
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug("rare plane history already present, skipping seed")
		return nil
	}

	s.logger.Info("seeding rare plane history", "airport", s.airportCode)

	seeded := 0
	currentPage, totalPages := 1, 1
	for currentPage <= totalPages {
		// Negative pages walk the arrival history.
		snapshots, total, err := s.arrivalRepo.AirportArrivals(ctx, s.airportCode, -currentPage)
		if err != nil {
			return err
		}
		totalPages = total

		for _, snap := range snapshots {
			if snap.AirlineICAO == "" || snap.AircraftType == "" || snap.RealArrival == nil {
				continue
			}
			if err := s.rareHistory.Insert(snap.AirlineICAO, snap.AircraftType, *snap.RealArrival); err != nil {
				return err
			}
			seeded++
		}
		currentPage++
	}

	s.logger.Info("rare plane history seeded", "flights", seeded, "pages", totalPages)
	return nil
}
