// internal/interface/repository/exclusion_repo.go
package repository

import (
	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
)

// CsvExclusionRepository stores the exclusion list in a flat CSV table.
type CsvExclusionRepository struct {
	path string
}

// NewCsvExclusionRepository creates an exclusion repository backed by the
// given file. The file is created lazily on first use.
func NewCsvExclusionRepository(path string) repository.ExclusionRepository {
	return &CsvExclusionRepository{path: path}
}

// IsExcluded reports whether the registration appears in the exclusion list.
func (r *CsvExclusionRepository) IsExcluded(registration string) (bool, error) {
	rows, err := readTable[entity.ExclusionEntry](r.path)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if row.Registration == registration {
			return true, nil
		}
	}
	return false, nil
}

// List returns every exclusion entry in file order.
func (r *CsvExclusionRepository) List() ([]*entity.ExclusionEntry, error) {
	return readTable[entity.ExclusionEntry](r.path)
}

// Add appends an entry and rewrites the store.
func (r *CsvExclusionRepository) Add(entry *entity.ExclusionEntry) error {
	rows, err := readTable[entity.ExclusionEntry](r.path)
	if err != nil {
		return err
	}
	rows = append(rows, entry)
	return writeTable(r.path, rows)
}

// Delete removes the entries at the given indexes.
func (r *CsvExclusionRepository) Delete(indexes []int) error {
	rows, err := readTable[entity.ExclusionEntry](r.path)
	if err != nil {
		return err
	}
	kept, err := deleteRows(rows, indexes)
	if err != nil {
		return err
	}
	return writeTable(r.path, kept)
}
