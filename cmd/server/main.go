package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/infrastructure/config"
	"planewatch-service/internal/interface/bot"
	csvRepo "planewatch-service/internal/interface/repository"
	"planewatch-service/internal/usecase"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// airportRetryDelay spaces out retries when the feed cannot resolve the
// airport at startup.
const airportRetryDelay = time.Minute

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting Planewatch Service", "version", cfg.AppVersion, "airport", cfg.AirportCode)

	if cfg.AirportCode == "" {
		log.Fatal("AIRPORT_CODE is required")
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		log.Fatal("TELEGRAM_BOT_TOKEN and CHAT_ID are required")
	}
	if err := os.MkdirAll(cfg.FilterDir, 0o755); err != nil {
		log.Fatal("Failed to create filter directory", "dir", cfg.FilterDir, "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up repositories
	arrivalRepo := csvRepo.NewFlightRadarRepository(cfg.FlightRadarBaseURL, log)
	exclusionRepo := csvRepo.NewCsvExclusionRepository(cfg.ExclusionPath)
	liveryHistory := csvRepo.NewCsvLiveryHistoryRepository(cfg.LiveryPath)
	rareHistory := csvRepo.NewCsvRarePlaneHistoryRepository(cfg.RarePlanePath)
	regoWatchlist := csvRepo.NewCsvRegoWatchlistRepository(cfg.RegoWatchPath)
	typeWatchlist := csvRepo.NewCsvTypeWatchlistRepository(cfg.TypeWatchPath)
	statusRecords := csvRepo.NewCsvStatusRecordRepository(cfg.StatusRecordPath)
	sunTimes := csvRepo.NewSunCalcRepository()

	// Resolve the watched airport; the feed can be flaky at startup
	airport := resolveAirport(ctx, arrivalRepo.AirportDetails, cfg.AirportCode, log)
	log.Info("Watching airport", "name", airport.Name, "iata", airport.IATA, "timezone", airport.Timezone)

	// Seed the rare plane history on a fresh installation; a failed seed is
	// not fatal, the rule just treats unseeded pairs as first sightings
	seeder := usecase.NewHistorySeeder(arrivalRepo, rareHistory, log, cfg.AirportCode)
	if err := seeder.Seed(ctx); err != nil {
		log.Warn("Rare plane history seeding aborted", "error", err)
	}

	// Set up Telegram
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal("Failed to authorize Telegram bot", "error", err)
	}
	notifier := csvRepo.NewTelegramRepository(botAPI, cfg.TelegramChatID, log)

	m := metrics.NewMetrics("planewatch")

	processor, err := usecase.NewArrivalProcessor(
		usecase.ProcessorConfig{
			AirportCode:    cfg.AirportCode,
			Pages:          cfg.ArrivalPages,
			LiveryWindow:   ruleWindow(cfg.Livery, time.Hour),
			LiveryKeywords: cfg.LiveryKeywords,
			RareWindow:     ruleWindow(cfg.RarePlane, 24*time.Hour),
			RegoWindow:     ruleWindow(cfg.RegoWatchlist, time.Hour),
			TypeWindow:     ruleWindow(cfg.TypeWatchlist, time.Hour),
			ShortCircuit:   cfg.CascadeShortCircuit,
		},
		airport,
		arrivalRepo, exclusionRepo, liveryHistory, rareHistory,
		regoWatchlist, typeWatchlist, statusRecords,
		sunTimes, notifier, log, m,
	)
	if err != nil {
		log.Fatal("Failed to create arrival processor", "error", err)
	}

	// Start the filter editing bot in a goroutine
	filterBot := bot.NewBot(botAPI, cfg.TelegramChatID, exclusionRepo, regoWatchlist, typeWatchlist, log)
	go filterBot.Run(ctx)

	// Start the poll cycle in a goroutine. Cycles never overlap: each one
	// runs to completion before the ticker is consulted again.
	go func() {
		pollTicker := time.NewTicker(cfg.PollInterval)
		defer pollTicker.Stop()

		for {
			log.Info("Checking for arrivals")
			if err := processor.ProcessArrivals(ctx); err != nil {
				log.Error("Poll cycle aborted", "error", err)
			}

			select {
			case <-ctx.Done():
				log.Info("Arrival poller stopped")
				return
			case <-pollTicker.C:
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	log.Info("Planewatch Service stopped")
}

// ruleWindow converts one rule's settings into the cascade's window, scaling
// the interval by the rule's unit (hours for most, days for rare planes).
func ruleWindow(settings config.RuleSettings, unit time.Duration) usecase.RuleWindow {
	return usecase.RuleWindow{
		Threshold: time.Duration(settings.Interval) * unit,
		Days:      settings.Days,
		TimeMode:  settings.TimeMode,
	}
}

// resolveAirport keeps asking the feed for the airport until it answers.
func resolveAirport(
	ctx context.Context,
	lookup func(context.Context, string) (*entity.Airport, error),
	code string,
	log logger.Logger,
) *entity.Airport {
	for {
		airport, err := lookup(ctx, code)
		if err == nil {
			return airport
		}
		log.Error("Failed to resolve airport, retrying", "code", code, "delay", airportRetryDelay, "error", err)

		select {
		case <-ctx.Done():
			log.Fatal("Shutting down before airport could be resolved")
		case <-time.After(airportRetryDelay):
		}
	}
}
