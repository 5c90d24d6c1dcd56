// internal/domain/repository/suntimes_repository.go
package repository

import "time"

// SunTimesRepository computes sunrise and sunset for a location and calendar
// date, backing the daylight arrival window.
type SunTimesRepository interface {
	SunriseSunset(latitude, longitude float64, date time.Time) (sunrise, sunset time.Time, err error)
}
