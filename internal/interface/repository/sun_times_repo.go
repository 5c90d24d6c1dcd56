// internal/interface/repository/sun_times_repo.go
package repository

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"planewatch-service/internal/domain/repository"
)

// SunCalcRepository computes sunrise and sunset locally from the airport's
// coordinates.
type SunCalcRepository struct{}

// NewSunCalcRepository creates a sun times calculator.
func NewSunCalcRepository() repository.SunTimesRepository {
	return &SunCalcRepository{}
}

// SunriseSunset returns sunrise and sunset (UTC) for the calendar date of the
// given instant. Polar days and nights, where the sun never crosses the
// horizon, are reported as an error.
func (r *SunCalcRepository) SunriseSunset(latitude, longitude float64, date time.Time) (time.Time, time.Time, error) {
	rise, set := sunrise.SunriseSunset(latitude, longitude, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("no sunrise/sunset on %s at %.4f,%.4f",
			date.Format("2006-01-02"), latitude, longitude)
	}
	return rise, set, nil
}
