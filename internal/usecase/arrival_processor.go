// internal/usecase/arrival_processor.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
	"planewatch-service/pkg/utils"
)

// ProcessorConfig carries the per-rule settings the cascade runs with.
type ProcessorConfig struct {
	AirportCode string
	// Pages is how many arrival board pages one poll cycle walks.
	Pages int

	LiveryWindow   RuleWindow
	LiveryKeywords []string
	RareWindow     RuleWindow
	RegoWindow     RuleWindow
	TypeWindow     RuleWindow

	// ShortCircuit stops evaluating lower-priority rules once a winner is
	// found. Off by default: every rule's history bookkeeping runs on every
	// observation, so debounce windows keep sliding even for losing rules.
	ShortCircuit bool
}

// ArrivalProcessor runs every polled arrival snapshot through the
// notification rule cascade and delivers the winning candidate.
type ArrivalProcessor struct {
	config  ProcessorConfig
	airport *entity.Airport
	// location is the airport timezone, resolved once at construction.
	location *time.Location

	arrivalRepo   repository.ArrivalRepository
	exclusionRepo repository.ExclusionRepository
	liveryHistory repository.LiveryHistoryRepository
	rareHistory   repository.RarePlaneHistoryRepository
	regoWatchlist repository.RegoWatchlistRepository
	typeWatchlist repository.TypeWatchlistRepository
	statusRecords repository.StatusRecordRepository
	sunTimes      repository.SunTimesRepository
	notifier      repository.NotifierRepository

	logger  logger.Logger
	metrics *metrics.Metrics

	// now is overridable so tests can pin the clock.
	now func() time.Time
}

// NewArrivalProcessor creates an arrival processor for one airport. The
// metrics argument may be nil.
func NewArrivalProcessor(
	config ProcessorConfig,
	airport *entity.Airport,
	arrivalRepo repository.ArrivalRepository,
	exclusionRepo repository.ExclusionRepository,
	liveryHistory repository.LiveryHistoryRepository,
	rareHistory repository.RarePlaneHistoryRepository,
	regoWatchlist repository.RegoWatchlistRepository,
	typeWatchlist repository.TypeWatchlistRepository,
	statusRecords repository.StatusRecordRepository,
	sunTimes repository.SunTimesRepository,
	notifier repository.NotifierRepository,
	logger logger.Logger,
	m *metrics.Metrics,
) (*ArrivalProcessor, error) {
	location, err := time.LoadLocation(airport.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown airport timezone %q: %w", airport.Timezone, err)
	}

	return &ArrivalProcessor{
		config:        config,
		airport:       airport,
		location:      location,
		arrivalRepo:   arrivalRepo,
		exclusionRepo: exclusionRepo,
		liveryHistory: liveryHistory,
		rareHistory:   rareHistory,
		regoWatchlist: regoWatchlist,
		typeWatchlist: typeWatchlist,
		statusRecords: statusRecords,
		sunTimes:      sunTimes,
		notifier:      notifier,
		logger:        logger,
		metrics:       m,
		now:           time.Now,
	}, nil
}

// ProcessArrivals runs one poll cycle: every page of the arrival board, every
// snapshot on it, sequentially. An upstream failure aborts the remainder of
// the cycle; the next scheduled cycle retries naturally.
func (p *ArrivalProcessor) ProcessArrivals(ctx context.Context) error {
	start := time.Now()

	for page := 1; page <= p.config.Pages; page++ {
		snapshots, _, err := p.arrivalRepo.AirportArrivals(ctx, p.config.AirportCode, page)
		if err != nil {
			p.countError("fetch_arrivals")
			return fmt.Errorf("failed to fetch arrivals page %d: %w", page, err)
		}

		for _, snap := range snapshots {
			if p.metrics != nil {
				p.metrics.ArrivalsProcessed.Inc()
			}

			winner := p.Resolve(snap)
			if winner == nil {
				continue
			}

			if err := p.notify(ctx, winner); err != nil {
				return err
			}
		}
	}

	if p.metrics != nil {
		p.metrics.PollDuration.Observe(time.Since(start).Seconds())
	}
	return nil
}

// Resolve runs the five rules in fixed priority order and returns the first
// candidate, or nil. Unless short-circuiting is enabled every rule runs for
// its history side effects even after a winner is known. A failure in one
// rule never blocks the others.
func (p *ArrivalProcessor) Resolve(snap *entity.ArrivalSnapshot) *entity.NotificationCandidate {
	rules := []struct {
		name entity.NotificationRule
		eval func(*entity.ArrivalSnapshot) (*entity.NotificationCandidate, error)
	}{
		{entity.RuleSpecialLivery, p.checkSpecialLivery},
		{entity.RuleRarePlane, p.checkRarePlane},
		{entity.RuleRegoWatchlist, p.checkRegoWatchlist},
		{entity.RuleTypeWatchlist, p.checkTypeWatchlist},
		{entity.RuleStatusChange, p.checkStatusChange},
	}

	var winner *entity.NotificationCandidate
	for _, rule := range rules {
		candidate, err := rule.eval(snap)
		if err != nil {
			p.logger.Error("rule evaluation failed",
				"rule", rule.name,
				"registration", snap.Registration,
				"error", err)
			p.countError("rule_evaluation")
			continue
		}
		if candidate != nil && winner == nil {
			winner = candidate
			if p.config.ShortCircuit {
				break
			}
		}
	}
	return winner
}

// notify renders and delivers the winning candidate, then records on-ground
// aircraft for the status change rule. A registration-details failure aborts
// the cycle; a delivery failure only skips this notification.
func (p *ArrivalProcessor) notify(ctx context.Context, candidate *entity.NotificationCandidate) error {
	details, err := p.arrivalRepo.RegistrationDetails(ctx, candidate.Registration)
	if err != nil {
		p.countError("fetch_registration")
		return fmt.Errorf("failed to fetch registration details for %s: %w", candidate.Registration, err)
	}

	now := p.now()
	snap := candidate.Snapshot
	text := utils.FormatFlightDetails(utils.FlightDetailsInput{
		Snapshot:      snap,
		Rule:          candidate.Rule,
		Status:        snap.Status(now.Unix()),
		ArrivalPeriod: p.arrivalPeriod(snap),
		NextFlight:    utils.NextDeparture(details, p.airport.IATA),
		Location:      p.location,
	})

	if details != nil && details.PhotoURL != "" {
		caption := fmt.Sprintf("Aircraft Photo: %s", candidate.Registration)
		if err := p.notifier.SendPhoto(ctx, details.PhotoURL, caption); err != nil {
			p.logger.Error("failed to send photo", "registration", candidate.Registration, "error", err)
			p.countError("send_photo")
		}
	}

	if err := p.notifier.SendMessage(ctx, text); err != nil {
		p.logger.Error("failed to deliver notification",
			"rule", candidate.Rule,
			"registration", candidate.Registration,
			"error", err)
		p.countError("send_message")
		return nil
	}

	p.logger.Info("notification delivered",
		"rule", candidate.Rule,
		"registration", candidate.Registration,
		"flight", snap.FlightNumber)
	if p.metrics != nil {
		p.metrics.NotificationsSent.WithLabelValues(string(candidate.Rule)).Inc()
	}

	p.recordNotification(candidate)
	return nil
}

// recordNotification remembers aircraft that were notified while still on the
// ground, so the status change rule can detect their departure later.
func (p *ArrivalProcessor) recordNotification(candidate *entity.NotificationCandidate) {
	now := p.now().Unix()
	if candidate.Snapshot.Status(now) != entity.StatusOnGround {
		return
	}

	record := &entity.StatusRecord{
		Registration: candidate.Registration,
		FlightStatus: string(entity.StatusOnGround),
		Time:         now,
	}
	if err := p.statusRecords.Upsert(record); err != nil {
		p.logger.Error("failed to record notified aircraft", "registration", candidate.Registration, "error", err)
		p.countError("record_status")
	}
}

// arrivalPeriod classifies the arrival for display.
func (p *ArrivalProcessor) arrivalPeriod(snap *entity.ArrivalSnapshot) string {
	if snap.EffectiveArrival() == nil {
		return "N/A"
	}
	if p.isDaylightArrival(snap) {
		return "Daylight Arrival"
	}
	return "Night-time Arrival"
}

func (p *ArrivalProcessor) countError(operation string) {
	if p.metrics != nil {
		p.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
