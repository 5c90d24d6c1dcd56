// internal/usecase/rules.go
package usecase

import (
	"strings"
	"time"

	"planewatch-service/internal/domain/entity"
)

// statusRecordMaxAge evicts stale on-ground records regardless of status.
const statusRecordMaxAge = 24 * time.Hour

// checkSpecialLivery notifies when the airline display name carries one of
// the configured livery keywords. Debounced per registration.
func (p *ArrivalProcessor) checkSpecialLivery(snap *entity.ArrivalSnapshot) (*entity.NotificationCandidate, error) {
	if snap.AirlineName == "" || snap.Registration == "" {
		return nil, nil
	}
	if !p.inActiveWindow(p.config.LiveryWindow, snap) {
		return nil, nil
	}
	if !matchesKeyword(snap.AirlineName, p.config.LiveryKeywords) {
		return nil, nil
	}

	excluded, err := p.exclusionRepo.IsExcluded(snap.Registration)
	if err != nil || excluded {
		return nil, err
	}

	now := p.now().Unix()
	last, seen, err := p.liveryHistory.LastSeen(snap.Registration)
	if err != nil {
		return nil, err
	}
	// Sliding debounce: the sighting is recorded whether or not it notifies.
	if err := p.liveryHistory.Upsert(snap.Registration, now); err != nil {
		return nil, err
	}
	if seen && !p.thresholdPassed(last, now, p.config.LiveryWindow) {
		return nil, nil
	}
	return candidate(snap, entity.RuleSpecialLivery), nil
}

// checkRarePlane notifies when an airline/type pair has not arrived within
// the threshold. Rarity is entirely a function of history absence or age.
func (p *ArrivalProcessor) checkRarePlane(snap *entity.ArrivalSnapshot) (*entity.NotificationCandidate, error) {
	if snap.AirlineICAO == "" || snap.AircraftType == "" || snap.Registration == "" {
		return nil, nil
	}
	if !p.inActiveWindow(p.config.RareWindow, snap) {
		return nil, nil
	}

	excluded, err := p.exclusionRepo.IsExcluded(snap.Registration)
	if err != nil || excluded {
		return nil, err
	}

	now := p.now().Unix()
	last, seen, err := p.rareHistory.LastSeen(snap.AirlineICAO, snap.AircraftType)
	if err != nil {
		return nil, err
	}
	if err := p.rareHistory.Upsert(snap.AirlineICAO, snap.AircraftType, now); err != nil {
		return nil, err
	}
	if seen && !p.thresholdPassed(last, now, p.config.RareWindow) {
		return nil, nil
	}
	return candidate(snap, entity.RuleRarePlane), nil
}

// checkRegoWatchlist notifies for registrations the operator put on the
// watchlist. A registration that is not on the list never notifies.
func (p *ArrivalProcessor) checkRegoWatchlist(snap *entity.ArrivalSnapshot) (*entity.NotificationCandidate, error) {
	if snap.Registration == "" {
		return nil, nil
	}
	if !p.inActiveWindow(p.config.RegoWindow, snap) {
		return nil, nil
	}

	entry, err := p.regoWatchlist.Find(snap.Registration)
	if err != nil || entry == nil {
		return nil, err
	}

	excluded, err := p.exclusionRepo.IsExcluded(snap.Registration)
	if err != nil || excluded {
		return nil, err
	}

	now := p.now().Unix()
	if err := p.regoWatchlist.Touch(snap.Registration, now); err != nil {
		return nil, err
	}
	// A zero Time means the entry has never matched; the first sighting
	// always notifies.
	if entry.Time != 0 && !p.thresholdPassed(entry.Time, now, p.config.RegoWindow) {
		return nil, nil
	}
	return candidate(snap, entity.RuleRegoWatchlist), nil
}

// checkTypeWatchlist notifies for airline/type pairs the operator put on the
// watchlist.
func (p *ArrivalProcessor) checkTypeWatchlist(snap *entity.ArrivalSnapshot) (*entity.NotificationCandidate, error) {
	if snap.AirlineICAO == "" || snap.AircraftType == "" || snap.Registration == "" {
		return nil, nil
	}
	if !p.inActiveWindow(p.config.TypeWindow, snap) {
		return nil, nil
	}

	entry, err := p.typeWatchlist.Find(snap.AirlineICAO, snap.AircraftType)
	if err != nil || entry == nil {
		return nil, err
	}

	excluded, err := p.exclusionRepo.IsExcluded(snap.Registration)
	if err != nil || excluded {
		return nil, err
	}

	now := p.now().Unix()
	if err := p.typeWatchlist.Touch(snap.AirlineICAO, snap.AircraftType, now); err != nil {
		return nil, err
	}
	if entry.Time != 0 && !p.thresholdPassed(entry.Time, now, p.config.TypeWindow) {
		return nil, nil
	}
	return candidate(snap, entity.RuleTypeWatchlist), nil
}

// checkStatusChange is the one ungated rule: it fires when an aircraft that
// was notified on the ground is next seen in flight. Records older than 24
// hours are evicted without firing.
func (p *ArrivalProcessor) checkStatusChange(snap *entity.ArrivalSnapshot) (*entity.NotificationCandidate, error) {
	if snap.Registration == "" {
		return nil, nil
	}

	excluded, err := p.exclusionRepo.IsExcluded(snap.Registration)
	if err != nil || excluded {
		return nil, err
	}

	record, err := p.statusRecords.Find(snap.Registration)
	if err != nil || record == nil {
		return nil, err
	}

	now := p.now().Unix()
	if time.Duration(now-record.Time)*time.Second > statusRecordMaxAge {
		return nil, p.statusRecords.Delete(snap.Registration)
	}

	if record.FlightStatus == string(entity.StatusOnGround) && snap.Status(now) == entity.StatusInFlight {
		if err := p.statusRecords.Delete(snap.Registration); err != nil {
			return nil, err
		}
		return candidate(snap, entity.RuleStatusChange), nil
	}
	return nil, nil
}

// thresholdPassed reports whether the debounce window has fully elapsed. A
// sighting at exactly the threshold notifies again.
func (p *ArrivalProcessor) thresholdPassed(last, now int64, window RuleWindow) bool {
	return time.Duration(now-last)*time.Second >= window.Threshold
}

func candidate(snap *entity.ArrivalSnapshot, rule entity.NotificationRule) *entity.NotificationCandidate {
	return &entity.NotificationCandidate{
		Snapshot:     snap,
		Registration: snap.Registration,
		Rule:         rule,
	}
}

func matchesKeyword(airlineName string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(airlineName, keyword) {
			return true
		}
	}
	return false
}
