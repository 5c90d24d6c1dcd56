// internal/usecase/fakes_test.go
package usecase

import (
	"context"
	"errors"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/pkg/logger"
)

// In-memory stand-ins for the CSV stores and the upstream feed.

type fakeArrivalRepo struct {
	pages      map[int][]*entity.ArrivalSnapshot
	totalPages int
	err        error
	details    *entity.RegistrationDetails
	detailsErr error
	calls      []int
}

func (f *fakeArrivalRepo) AirportDetails(_ context.Context, code string) (*entity.Airport, error) {
	return &entity.Airport{Name: "Test Airport", IATA: code, Timezone: "UTC"}, nil
}

func (f *fakeArrivalRepo) AirportArrivals(_ context.Context, _ string, page int) ([]*entity.ArrivalSnapshot, int, error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.pages[page], f.totalPages, nil
}

func (f *fakeArrivalRepo) RegistrationDetails(_ context.Context, registration string) (*entity.RegistrationDetails, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	if f.details != nil {
		return f.details, nil
	}
	return &entity.RegistrationDetails{Registration: registration}, nil
}

type fakeExclusions struct {
	registrations map[string]bool
}

func (f *fakeExclusions) IsExcluded(registration string) (bool, error) {
	return f.registrations[registration], nil
}
func (f *fakeExclusions) List() ([]*entity.ExclusionEntry, error) { return nil, nil }
func (f *fakeExclusions) Add(*entity.ExclusionEntry) error       { return nil }
func (f *fakeExclusions) Delete([]int) error                     { return nil }

type fakeLiveryHistory struct {
	entries map[string]int64
}

func (f *fakeLiveryHistory) LastSeen(registration string) (int64, bool, error) {
	ts, ok := f.entries[registration]
	return ts, ok, nil
}

func (f *fakeLiveryHistory) Upsert(registration string, ts int64) error {
	f.entries[registration] = ts
	return nil
}

type pairKey struct {
	airline      string
	aircraftType string
}

type fakeRareHistory struct {
	entries map[pairKey]int64
	created bool
}

func (f *fakeRareHistory) Exists() (bool, error) { return f.created, nil }

func (f *fakeRareHistory) LastSeen(airline, aircraftType string) (int64, bool, error) {
	ts, ok := f.entries[pairKey{airline, aircraftType}]
	return ts, ok, nil
}

func (f *fakeRareHistory) Upsert(airline, aircraftType string, ts int64) error {
	f.created = true
	f.entries[pairKey{airline, aircraftType}] = ts
	return nil
}

func (f *fakeRareHistory) Insert(airline, aircraftType string, ts int64) error {
	f.created = true
	key := pairKey{airline, aircraftType}
	if _, ok := f.entries[key]; !ok {
		f.entries[key] = ts
	}
	return nil
}

type fakeRegoWatchlist struct {
	entries map[string]*entity.RegoWatchlistEntry
}

func (f *fakeRegoWatchlist) Find(registration string) (*entity.RegoWatchlistEntry, error) {
	// Like the CSV repository, Find returns a copy: Touch must not mutate
	// an entry the caller already holds.
	entry, ok := f.entries[registration]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeRegoWatchlist) Touch(registration string, ts int64) error {
	entry, ok := f.entries[registration]
	if !ok {
		return errors.New("entry not found")
	}
	entry.Time = ts
	return nil
}

func (f *fakeRegoWatchlist) List() ([]*entity.RegoWatchlistEntry, error) { return nil, nil }
func (f *fakeRegoWatchlist) Add(*entity.RegoWatchlistEntry) error        { return nil }
func (f *fakeRegoWatchlist) Delete([]int) error                          { return nil }

type fakeTypeWatchlist struct {
	entries map[pairKey]*entity.TypeWatchlistEntry
}

func (f *fakeTypeWatchlist) Find(airline, aircraftType string) (*entity.TypeWatchlistEntry, error) {
	// Like the CSV repository, Find returns a copy: Touch must not mutate
	// an entry the caller already holds.
	entry, ok := f.entries[pairKey{airline, aircraftType}]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeTypeWatchlist) Touch(airline, aircraftType string, ts int64) error {
	entry, ok := f.entries[pairKey{airline, aircraftType}]
	if !ok {
		return errors.New("entry not found")
	}
	entry.Time = ts
	return nil
}

func (f *fakeTypeWatchlist) List() ([]*entity.TypeWatchlistEntry, error) { return nil, nil }
func (f *fakeTypeWatchlist) Add(*entity.TypeWatchlistEntry) error        { return nil }
func (f *fakeTypeWatchlist) Delete([]int) error                          { return nil }

type fakeStatusRecords struct {
	records map[string]*entity.StatusRecord
}

func (f *fakeStatusRecords) Find(registration string) (*entity.StatusRecord, error) {
	return f.records[registration], nil
}

func (f *fakeStatusRecords) Upsert(record *entity.StatusRecord) error {
	f.records[record.Registration] = record
	return nil
}

func (f *fakeStatusRecords) Delete(registration string) error {
	delete(f.records, registration)
	return nil
}

type fakeSunTimes struct {
	rise time.Time
	set  time.Time
	err  error
}

func (f *fakeSunTimes) SunriseSunset(_, _ float64, _ time.Time) (time.Time, time.Time, error) {
	return f.rise, f.set, f.err
}

type fakeNotifier struct {
	messages []string
	photos   []string
	sendErr  error
}

func (f *fakeNotifier) SendMessage(_ context.Context, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeNotifier) SendPhoto(_ context.Context, photoURL, _ string) error {
	f.photos = append(f.photos, photoURL)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Error(string, ...interface{})        {}
func (nopLogger) Fatal(string, ...interface{})        {}
func (l nopLogger) With(...interface{}) logger.Logger { return l }
