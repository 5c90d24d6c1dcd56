// internal/interface/repository/watchlist_repo.go
package repository

import (
	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
)

// CsvRegoWatchlistRepository stores the registration watchlist in a flat CSV
// table. Rows are added through the bot surface; the engine only reads them
// and advances their last-seen instant.
type CsvRegoWatchlistRepository struct {
	path string
}

// NewCsvRegoWatchlistRepository creates a registration watchlist repository
// backed by the given file.
func NewCsvRegoWatchlistRepository(path string) repository.RegoWatchlistRepository {
	return &CsvRegoWatchlistRepository{path: path}
}

// Find returns the watchlist entry for a registration, or nil when the
// registration is not watched. First match wins on duplicate rows.
func (r *CsvRegoWatchlistRepository) Find(registration string) (*entity.RegoWatchlistEntry, error) {
	rows, err := readTable[entity.RegoWatchlistEntry](r.path)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Registration == registration {
			return row, nil
		}
	}
	return nil, nil
}

// Touch sets the last-seen instant of a watched registration.
func (r *CsvRegoWatchlistRepository) Touch(registration string, ts int64) error {
	rows, err := readTable[entity.RegoWatchlistEntry](r.path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Registration == registration {
			row.Time = ts
			return writeTable(r.path, rows)
		}
	}
	return ErrNotFound
}

// List returns every watchlist entry in file order.
func (r *CsvRegoWatchlistRepository) List() ([]*entity.RegoWatchlistEntry, error) {
	return readTable[entity.RegoWatchlistEntry](r.path)
}

// Add appends an entry and rewrites the store.
func (r *CsvRegoWatchlistRepository) Add(entry *entity.RegoWatchlistEntry) error {
	rows, err := readTable[entity.RegoWatchlistEntry](r.path)
	if err != nil {
		return err
	}
	rows = append(rows, entry)
	return writeTable(r.path, rows)
}

// Delete removes the entries at the given indexes.
func (r *CsvRegoWatchlistRepository) Delete(indexes []int) error {
	rows, err := readTable[entity.RegoWatchlistEntry](r.path)
	if err != nil {
		return err
	}
	kept, err := deleteRows(rows, indexes)
	if err != nil {
		return err
	}
	return writeTable(r.path, kept)
}

// CsvTypeWatchlistRepository stores the airline/type watchlist in a flat CSV
// table.
type CsvTypeWatchlistRepository struct {
	path string
}

// NewCsvTypeWatchlistRepository creates a type watchlist repository backed by
// the given file.
func NewCsvTypeWatchlistRepository(path string) repository.TypeWatchlistRepository {
	return &CsvTypeWatchlistRepository{path: path}
}

// Find returns the watchlist entry for an airline/type pair, or nil when the
// pair is not watched.
func (r *CsvTypeWatchlistRepository) Find(airline, aircraftType string) (*entity.TypeWatchlistEntry, error) {
	rows, err := readTable[entity.TypeWatchlistEntry](r.path)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Airline == airline && row.AircraftType == aircraftType {
			return row, nil
		}
	}
	return nil, nil
}

// Touch sets the last-seen instant of a watched airline/type pair.
func (r *CsvTypeWatchlistRepository) Touch(airline, aircraftType string, ts int64) error {
	rows, err := readTable[entity.TypeWatchlistEntry](r.path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Airline == airline && row.AircraftType == aircraftType {
			row.Time = ts
			return writeTable(r.path, rows)
		}
	}
	return ErrNotFound
}

// List returns every watchlist entry in file order.
func (r *CsvTypeWatchlistRepository) List() ([]*entity.TypeWatchlistEntry, error) {
	return readTable[entity.TypeWatchlistEntry](r.path)
}

// Add appends an entry and rewrites the store.
func (r *CsvTypeWatchlistRepository) Add(entry *entity.TypeWatchlistEntry) error {
	rows, err := readTable[entity.TypeWatchlistEntry](r.path)
	if err != nil {
		return err
	}
	rows = append(rows, entry)
	return writeTable(r.path, rows)
}

// Delete removes the entries at the given indexes.
func (r *CsvTypeWatchlistRepository) Delete(indexes []int) error {
	rows, err := readTable[entity.TypeWatchlistEntry](r.path)
	if err != nil {
		return err
	}
	kept, err := deleteRows(rows, indexes)
	if err != nil {
		return err
	}
	return writeTable(r.path, kept)
}
