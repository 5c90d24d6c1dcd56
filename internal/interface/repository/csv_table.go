// internal/interface/repository/csv_table.go
package repository

import (
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// ErrNotFound is returned when a keyed lookup matches no row.
var ErrNotFound = errors.New("entry not found")

// ErrCorruptStore wraps parse failures of an existing store file, so callers
// can tell corruption apart from a store that simply does not exist yet.
var ErrCorruptStore = errors.New("corrupt store file")

// readTable loads every row of a CSV store. A missing file is not an error:
// the store is created with a header row only and no rows are returned. A
// file that exists but does not parse is reported as corruption and left
// untouched.
func readTable[T any](path string) ([]*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeTable[T](path, nil); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	var rows []*T
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	return rows, nil
}

// writeTable rewrites the whole store. The new content lands in a temp file
// first and replaces the store with a rename, so readers never see a
// half-written table.
func writeTable[T any](path string, rows []*T) error {
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("failed to marshal store %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace store %s: %w", path, err)
	}
	return nil
}

// tableExists reports whether the store file has been created.
func tableExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat store %s: %w", path, err)
}

// deleteRows removes the rows at the given zero-based indexes and returns the
// remaining rows in their original order. Out-of-range indexes are an error.
func deleteRows[T any](rows []*T, indexes []int) ([]*T, error) {
	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(rows) {
			return nil, fmt.Errorf("index %d out of range (%d entries)", idx, len(rows))
		}
		drop[idx] = true
	}

	kept := make([]*T, 0, len(rows)-len(drop))
	for i, row := range rows {
		if !drop[i] {
			kept = append(kept, row)
		}
	}
	return kept, nil
}
