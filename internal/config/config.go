package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tablebook/internal/domain"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultDatabaseURL   = "tablebook.db"
	defaultSMSQueue      = "sms.outbound"
	defaultAdminTokenTTL = "24h"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	// Optional collaborators; empty means the feature degrades to a no-op.
	RedisAddr string
	AMQPURL   string
	SMSQueue  string

	JWTSecret     string
	AdminTokenTTL time.Duration

	Booking domain.Settings
}

// Load reads configuration from the environment, with .env autoloading for
// local development. Unset values fall back to built-in defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      strings.ToLower(getEnv("APP_ENV", "dev")),
		HTTPAddr:    getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		SMSQueue:    getEnv("SMS_QUEUE", defaultSMSQueue),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	ttl, err := time.ParseDuration(getEnv("ADMIN_TOKEN_TTL", defaultAdminTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TOKEN_TTL: %w", err)
	}
	cfg.AdminTokenTTL = ttl

	booking, err := loadBookingSettings()
	if err != nil {
		return nil, err
	}
	cfg.Booking = booking

	if cfg.AppEnv != "dev" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set outside dev")
	}

	return cfg, nil
}

func loadBookingSettings() (domain.Settings, error) {
	s := domain.DefaultSettings()

	var err error
	if s.MaxCapacity, err = parseIntEnv("MAX_CAPACITY", s.MaxCapacity); err != nil {
		return s, err
	}
	if s.SlotDurationMins, err = parseIntEnv("SLOT_DURATION_MINS", s.SlotDurationMins); err != nil {
		return s, err
	}
	if s.ReservationHours, err = parseIntEnv("RESERVATION_HOURS", s.ReservationHours); err != nil {
		return s, err
	}
	if s.TotalSlots, err = parseIntEnv("TOTAL_SLOTS", s.TotalSlots); err != nil {
		return s, err
	}
	if s.OpenHour, err = parseIntEnv("OPEN_HOUR", s.OpenHour); err != nil {
		return s, err
	}
	if s.DateWindowStart, err = parseDateEnv("DATE_WINDOW_START", s.DateWindowStart); err != nil {
		return s, err
	}
	if s.DateWindowEnd, err = parseDateEnv("DATE_WINDOW_END", s.DateWindowEnd); err != nil {
		return s, err
	}

	if s.SlotDurationMins <= 0 || s.TotalSlots <= 0 || s.MaxCapacity <= 0 {
		return s, fmt.Errorf("booking settings must be positive")
	}
	if s.ReservationHours*60%s.SlotDurationMins != 0 {
		return s, fmt.Errorf("RESERVATION_HOURS must be a whole number of slots")
	}

	return s, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseDateEnv(key string, fallback time.Time) (time.Time, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}
