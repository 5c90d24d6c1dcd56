// internal/infrastructure/config/config.go
package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RuleSettings holds one notification rule's debounce and active window.
type RuleSettings struct {
	// Interval is the debounce threshold in the rule's own unit (hours for
	// livery and the watchlists, days for rare planes).
	Interval int
	// Days are weekday abbreviations (Mon, Tue, ...); empty means every day.
	Days []string
	// TimeMode is Off, Daylight, or anything else for all-day notifications.
	TimeMode string
}

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Metrics server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// Upstream feed
	AirportCode        string
	FlightRadarBaseURL string
	PollInterval       time.Duration
	ArrivalPages       int

	// Rules
	Livery              RuleSettings
	LiveryKeywords      []string
	RarePlane           RuleSettings
	RegoWatchlist       RuleSettings
	TypeWatchlist       RuleSettings
	CascadeShortCircuit bool

	// Store files
	FilterDir        string
	ExclusionPath    string
	LiveryPath       string
	RarePlanePath    string
	RegoWatchPath    string
	TypeWatchPath    string
	StatusRecordPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load the config file if it exists, then fall back to a local .env
	godotenv.Load("config/config.env")
	godotenv.Load()

	filterDir := getEnv("FILTER_DIR", "config/filters")

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   int64(getEnvAsInt("CHAT_ID", 0)),

		AirportCode:        getEnv("AIRPORT_CODE", ""),
		FlightRadarBaseURL: getEnv("FLIGHTRADAR_BASE_URL", ""),
		// NOTIFICATION_DELAY is minutes, fractions allowed
		PollInterval: time.Duration(math.Ceil(getEnvAsFloat("NOTIFICATION_DELAY", 5)*60)) * time.Second,
		// The feed serves 100 entries per page
		ArrivalPages: int(math.Ceil(getEnvAsFloat("ENTRY_OBTAINED", 100) / 100)),

		Livery: RuleSettings{
			Interval: int(math.Ceil(getEnvAsFloat("SPECIAL_LIVERY_TIME_INTERVAL", 12))),
			Days:     getEnvAsList("SPECIAL_LIVERY_NOTIFICATION_DAYS", nil),
			TimeMode: getEnv("SPECIAL_LIVERY_NOTIFICATION_TIME", "All"),
		},
		LiveryKeywords: getEnvAsList("SPECIAL_LIVERY_KEYWORDS", nil),
		RarePlane: RuleSettings{
			Interval: int(math.Ceil(getEnvAsFloat("RARE_PLANE_TIME_INTERVAL", 30))),
			Days:     getEnvAsList("RARE_PLANE_NOTIFICATION_DAYS", nil),
			TimeMode: getEnv("RARE_PLANE_NOTIFICATION_TIME", "All"),
		},
		RegoWatchlist: RuleSettings{
			Interval: int(math.Ceil(getEnvAsFloat("REGO_WATCHLIST_TIME_INTERVAL", 12))),
			Days:     getEnvAsList("REGO_WATCHLIST_NOTIFICATION_DAYS", nil),
			TimeMode: getEnv("REGO_WATCHLIST_NOTIFICATION_TIME", "All"),
		},
		TypeWatchlist: RuleSettings{
			Interval: int(math.Ceil(getEnvAsFloat("TYPE_WATCHLIST_TIME_INTERVAL", 12))),
			Days:     getEnvAsList("TYPE_WATCHLIST_NOTIFICATION_DAYS", nil),
			TimeMode: getEnv("TYPE_WATCHLIST_NOTIFICATION_TIME", "All"),
		},
		CascadeShortCircuit: getEnvAsBool("CASCADE_SHORT_CIRCUIT", false),

		FilterDir:        filterDir,
		ExclusionPath:    storePath(filterDir, getEnv("EXCLUSION_LIST_FILE_NAME", "exclusion_list")),
		LiveryPath:       storePath(filterDir, getEnv("SPECIAL_LIVERY_HISTORY_FILE_NAME", "livery_history")),
		RarePlanePath:    storePath(filterDir, getEnv("RARE_PLANE_HISTORY_FILE_NAME", "rare_plane_history")),
		RegoWatchPath:    storePath(filterDir, getEnv("REGO_WATCHLIST_FILE_NAME", "rego_watchlist")),
		TypeWatchPath:    storePath(filterDir, getEnv("TYPE_WATCHLIST_FILE_NAME", "type_watchlist")),
		StatusRecordPath: storePath(filterDir, getEnv("NOTIFICATION_RECORD_FILE_NAME", "notification_record")),
	}

	return config, nil
}

func storePath(dir, name string) string {
	return filepath.Join(dir, name+".csv")
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
