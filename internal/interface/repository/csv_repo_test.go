// internal/interface/repository/csv_repo_test.go
package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planewatch-service/internal/domain/entity"
)

func storeFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestExclusionLazyCreatesStore(t *testing.T) {
	path := storeFile(t, "exclusion_list.csv")
	repo := NewCsvExclusionRepository(path)

	excluded, err := repo.IsExcluded("VH-ABC")
	require.NoError(t, err)
	assert.False(t, excluded)

	// The first consultation materialized the file with a header row.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Airline,Registration,Description\n", string(data))
}

func TestExclusionAddAndLookup(t *testing.T) {
	repo := NewCsvExclusionRepository(storeFile(t, "exclusion_list.csv"))

	require.NoError(t, repo.Add(&entity.ExclusionEntry{
		Airline:      "QFA",
		Registration: "VH-XZP",
		Description:  "Qantas Retro Roo",
	}))

	excluded, err := repo.IsExcluded("VH-XZP")
	require.NoError(t, err)
	assert.True(t, excluded)

	excluded, err = repo.IsExcluded("VH-OTHER")
	require.NoError(t, err)
	assert.False(t, excluded)
}

func TestExclusionDeleteByIndex(t *testing.T) {
	repo := NewCsvExclusionRepository(storeFile(t, "exclusion_list.csv"))
	require.NoError(t, repo.Add(&entity.ExclusionEntry{Registration: "VH-AAA"}))
	require.NoError(t, repo.Add(&entity.ExclusionEntry{Registration: "VH-BBB"}))
	require.NoError(t, repo.Add(&entity.ExclusionEntry{Registration: "VH-CCC"}))

	require.NoError(t, repo.Delete([]int{0, 2}))

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "VH-BBB", entries[0].Registration)

	assert.Error(t, repo.Delete([]int{5}))
}

func TestLiveryHistoryUpsertPersists(t *testing.T) {
	path := storeFile(t, "livery_history.csv")
	repo := NewCsvLiveryHistoryRepository(path)

	_, seen, err := repo.LastSeen("VH-ABC")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.Upsert("VH-ABC", 1000))
	require.NoError(t, repo.Upsert("VH-ABC", 2000))
	require.NoError(t, repo.Upsert("VH-DEF", 1500))

	// A fresh repository on the same file sees the rewritten table.
	reopened := NewCsvLiveryHistoryRepository(path)
	ts, seen, err := reopened.LastSeen("VH-ABC")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, int64(2000), ts)
}

func TestRarePlaneHistoryKeyedByPair(t *testing.T) {
	repo := NewCsvRarePlaneHistoryRepository(storeFile(t, "rare_plane_history.csv"))

	require.NoError(t, repo.Upsert("QFA", "B744", 1000))
	require.NoError(t, repo.Upsert("QFA", "A332", 2000))

	ts, seen, err := repo.LastSeen("QFA", "B744")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, int64(1000), ts)

	_, seen, err = repo.LastSeen("UAE", "B744")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRarePlaneInsertKeepsFirstInstant(t *testing.T) {
	path := storeFile(t, "rare_plane_history.csv")
	repo := NewCsvRarePlaneHistoryRepository(path)

	exists, err := repo.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Insert("QFA", "B744", 1000))
	require.NoError(t, repo.Insert("QFA", "B744", 500))

	ts, seen, err := repo.LastSeen("QFA", "B744")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, int64(1000), ts)

	exists, err = repo.Exists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegoWatchlistTouch(t *testing.T) {
	repo := NewCsvRegoWatchlistRepository(storeFile(t, "rego_watchlist.csv"))

	entry, err := repo.Find("VH-XZP")
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, repo.Add(&entity.RegoWatchlistEntry{
		Airline:      "QFA",
		Registration: "VH-XZP",
		Description:  "Qantas Retro Roo",
	}))

	entry, err = repo.Find("VH-XZP")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Zero(t, entry.Time)

	require.NoError(t, repo.Touch("VH-XZP", 4200))
	entry, err = repo.Find("VH-XZP")
	require.NoError(t, err)
	assert.Equal(t, int64(4200), entry.Time)

	assert.ErrorIs(t, repo.Touch("VH-GONE", 4200), ErrNotFound)
}

func TestTypeWatchlistRoundTrip(t *testing.T) {
	repo := NewCsvTypeWatchlistRepository(storeFile(t, "type_watchlist.csv"))

	require.NoError(t, repo.Add(&entity.TypeWatchlistEntry{Airline: "UAE", AircraftType: "A388"}))
	require.NoError(t, repo.Touch("UAE", "A388", 9000))

	entry, err := repo.Find("UAE", "A388")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(9000), entry.Time)

	entry, err = repo.Find("UAE", "B77W")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStatusRecordLifecycle(t *testing.T) {
	repo := NewCsvStatusRecordRepository(storeFile(t, "notification_record.csv"))

	record, err := repo.Find("VH-TEST")
	require.NoError(t, err)
	assert.Nil(t, record)

	require.NoError(t, repo.Upsert(&entity.StatusRecord{
		Registration: "VH-TEST",
		FlightStatus: "On Ground",
		Time:         1000,
	}))
	require.NoError(t, repo.Upsert(&entity.StatusRecord{
		Registration: "VH-TEST",
		FlightStatus: "On Ground",
		Time:         2000,
	}))

	record, err = repo.Find("VH-TEST")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(2000), record.Time)

	require.NoError(t, repo.Delete("VH-TEST"))
	record, err = repo.Find("VH-TEST")
	require.NoError(t, err)
	assert.Nil(t, record)

	// Deleting an absent record is a no-op.
	require.NoError(t, repo.Delete("VH-TEST"))
}

func TestCorruptStoreIsReportedNotRecreated(t *testing.T) {
	path := storeFile(t, "livery_history.csv")
	corrupt := "Registration,Time\nVH-ABC,not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(corrupt), 0o644))

	repo := NewCsvLiveryHistoryRepository(path)
	_, _, err := repo.LastSeen("VH-ABC")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptStore)

	// The broken file is left in place for inspection.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, string(data))
}

func TestWriteTableReplacesAtomically(t *testing.T) {
	path := storeFile(t, "livery_history.csv")
	repo := NewCsvLiveryHistoryRepository(path)
	require.NoError(t, repo.Upsert("VH-ABC", 1000))

	// No temp file is left behind after a rewrite.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
