// internal/interface/repository/status_record_repo.go
package repository

import (
	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
)

// CsvStatusRecordRepository stores the notified-while-on-ground records the
// status change rule compares against.
type CsvStatusRecordRepository struct {
	path string
}

// NewCsvStatusRecordRepository creates a status record repository backed by
// the given file.
func NewCsvStatusRecordRepository(path string) repository.StatusRecordRepository {
	return &CsvStatusRecordRepository{path: path}
}

// Find returns the record for a registration, or nil when none exists.
func (r *CsvStatusRecordRepository) Find(registration string) (*entity.StatusRecord, error) {
	rows, err := readTable[entity.StatusRecord](r.path)
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

// Upsert creates the record or refreshes it in place.
func (r *CsvStatusRecordRepository) Upsert(record *entity.StatusRecord) error {
	rows, err := readTable[entity.StatusRecord](r.path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Registration == record.Registration {
			row.FlightStatus = record.FlightStatus
			row.Time = record.Time
			return writeTable(r.path, rows)
		}
	}
	rows = append(rows, record)
	return writeTable(r.path, rows)
}

// Delete removes the record for a registration. Deleting a registration with
// no record is a no-op.
func (r *CsvStatusRecordRepository) Delete(registration string) error {
	rows, err := readTable[entity.StatusRecord](r.path)
	if err != nil {
		return err
	}
	kept := rows[:0]
	for _, row := range rows {
		if row.Registration != registration {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return nil
	}
	return writeTable(r.path, kept)
}
