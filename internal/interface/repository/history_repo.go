// internal/interface/repository/history_repo.go
package repository

import (
	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
)

// CsvLiveryHistoryRepository stores special livery sightings keyed by
// registration.
type CsvLiveryHistoryRepository struct {
	path string
}

// NewCsvLiveryHistoryRepository creates a livery history repository backed by
// the given file.
func NewCsvLiveryHistoryRepository(path string) repository.LiveryHistoryRepository {
	return &CsvLiveryHistoryRepository{path: path}
}

// LastSeen returns the last-seen instant for a registration.
func (r *CsvLiveryHistoryRepository) LastSeen(registration string) (int64, bool, error) {
	rows, err := readTable[entity.LiveryHistory](r.path)
	if err != nil {
		return 0, false, err
	}
	for _, row := range rows {
		if row.Registration == registration {
			return row.Time, true, nil
		}
	}
	return 0, false, nil
}

// Upsert records the registration as seen at the given instant, updating the
// existing row in place when one exists.
func (r *CsvLiveryHistoryRepository) Upsert(registration string, ts int64) error {
	rows, err := readTable[entity.LiveryHistory](r.path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Registration == registration {
			row.Time = ts
			return writeTable(r.path, rows)
		}
	}
	rows = append(rows, &entity.LiveryHistory{Registration: registration, Time: ts})
	return writeTable(r.path, rows)
}

// CsvRarePlaneHistoryRepository stores rare plane sightings keyed by the
// airline and aircraft type pair.
type CsvRarePlaneHistoryRepository struct {
	path string
}

// NewCsvRarePlaneHistoryRepository creates a rare plane history repository
// backed by the given file.
func NewCsvRarePlaneHistoryRepository(path string) repository.RarePlaneHistoryRepository {
	return &CsvRarePlaneHistoryRepository{path: path}
}

// Exists reports whether the store file has been created. The seeder only
// runs when it has not.
func (r *CsvRarePlaneHistoryRepository) Exists() (bool, error) {
	return tableExists(r.path)
}

// LastSeen returns the last-seen instant for an airline/type pair.
func (r *CsvRarePlaneHistoryRepository) LastSeen(airline, aircraftType string) (int64, bool, error) {
	rows, err := readTable[entity.RarePlaneHistory](r.path)
	if err != nil {
		return 0, false, err
	}
	for _, row := range rows {
		if row.Airline == airline && row.AircraftType == aircraftType {
			return row.Time, true, nil
		}
	}
	return 0, false, nil
}

// Upsert records the pair as seen at the given instant.
func (r *CsvRarePlaneHistoryRepository) Upsert(airline, aircraftType string, ts int64) error {
	rows, err := readTable[entity.RarePlaneHistory](r.path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Airline == airline && row.AircraftType == aircraftType {
			row.Time = ts
			return writeTable(r.path, rows)
		}
	}
	rows = append(rows, &entity.RarePlaneHistory{Airline: airline, AircraftType: aircraftType, Time: ts})
	return writeTable(r.path, rows)
}

// Insert adds the pair only when it has no entry yet, so seed data keeps the
// earliest occurrence.
func (r *CsvRarePlaneHistoryRepository) Insert(airline, aircraftType string, ts int64) error {
	rows, err := readTable[entity.RarePlaneHistory](r.path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Airline == airline && row.AircraftType == aircraftType {
			return nil
		}
	}
	rows = append(rows, &entity.RarePlaneHistory{Airline: airline, AircraftType: aircraftType, Time: ts})
	return writeTable(r.path, rows)
}
