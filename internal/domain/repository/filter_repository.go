// internal/domain/repository/filter_repository.go
package repository

import "planewatch-service/internal/domain/entity"

// ExclusionRepository is the operator-maintained list of aircraft that never
// produce notifications. The engine only reads it; rows are added and removed
// through the bot surface.
type ExclusionRepository interface {
	IsExcluded(registration string) (bool, error)
	List() ([]*entity.ExclusionEntry, error)
	Add(entry *entity.ExclusionEntry) error
	Delete(indexes []int) error
}

// LiveryHistoryRepository debounces special livery sightings per registration.
type LiveryHistoryRepository interface {
	// LastSeen returns the stored last-seen instant, or ok=false when the
	// registration has never been recorded.
	LastSeen(registration string) (ts int64, ok bool, err error)
	// Upsert records the registration as seen at the given instant.
	Upsert(registration string, ts int64) error
}

// RarePlaneHistoryRepository debounces rare plane sightings per airline and
// aircraft type pair.
type RarePlaneHistoryRepository interface {
	// Exists reports whether the backing store file has been created at all.
	// The seeder only runs against an absent store.
	Exists() (bool, error)
	LastSeen(airline, aircraftType string) (ts int64, ok bool, err error)
	Upsert(airline, aircraftType string, ts int64) error
	// Insert adds the pair only when no entry for it exists yet; used by the
	// seeder so the earliest occurrence wins.
	Insert(airline, aircraftType string, ts int64) error
}

// RegoWatchlistRepository is the operator-curated registration watchlist.
type RegoWatchlistRepository interface {
	// Find returns the entry for a registration, or nil when it is not on
	// the watchlist.
	Find(registration string) (*entity.RegoWatchlistEntry, error)
	// Touch sets the entry's last-seen instant.
	Touch(registration string, ts int64) error
	List() ([]*entity.RegoWatchlistEntry, error)
	Add(entry *entity.RegoWatchlistEntry) error
	Delete(indexes []int) error
}

// TypeWatchlistRepository is the operator-curated airline/type watchlist.
type TypeWatchlistRepository interface {
	Find(airline, aircraftType string) (*entity.TypeWatchlistEntry, error)
	Touch(airline, aircraftType string, ts int64) error
	List() ([]*entity.TypeWatchlistEntry, error)
	Add(entry *entity.TypeWatchlistEntry) error
	Delete(indexes []int) error
}

// StatusRecordRepository remembers aircraft that were notified while on the
// ground, so the status change rule can spot their departure.
type StatusRecordRepository interface {
	Find(registration string) (*entity.StatusRecord, error)
	Upsert(record *entity.StatusRecord) error
	Delete(registration string) error
}
