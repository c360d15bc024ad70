package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"go.temporal.io/sdk/client"

	userauth "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/auth"
)

const defaultShopTimezone = "Asia/Seoul"

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port                       string `validate:"required,numeric"`
	PostgresDSN                string
	TemporalAddress            string `validate:"required"`
	TemporalNamespace          string `validate:"required"`
	TemporalDisabled           bool
	SessionPurgeIntervalMinute int           `validate:"gte=0"`
	JWTSecret                  string        `validate:"required,min=16"`
	JWTTTL                     time.Duration `validate:"gt=0"`
	OwnerToken                 string
	ShopTimezone               string `validate:"required"`
	MetricsEnabled             bool

	// Location is ShopTimezone resolved by LoadConfig.
	Location *time.Location `validate:"-"`
}

var validate = validator.New()

// LoadConfig reads environment variables and applies defaults. Malformed numbers,
// durations and time zones fail here; required secrets are checked by Validate so the
// worker, which never issues tokens, can share this loader.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:            userauth.DefaultTokenTTL,
		OwnerToken:        strings.TrimSpace(os.Getenv("OWNER_TOKEN")),
		ShopTimezone:      envDefault("SHOP_TIMEZONE", defaultShopTimezone),
		MetricsEnabled:    isTruthy(envDefault("METRICS_ENABLED", "true")),
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.SessionPurgeIntervalMinute = minutes
	}
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("JWT_TTL must be a positive duration such as 24h")
		}
		cfg.JWTTTL = ttl
	}
	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("SHOP_TIMEZONE %q: %w", cfg.ShopTimezone, err)
	}
	cfg.Location = loc
	return cfg, nil
}

// Validate checks the settings the API process cannot start without.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
