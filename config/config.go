package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Availability policy variants. Both exist across deployments; the policy is
// selected per installation, never inferred per request.
const (
	PolicyPerResource = "per_resource"
	PolicyPooled      = "pooled"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Booking  BookingConfig
	WhatsApp WhatsAppConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// BookingConfig carries every scheduling policy knob in one immutable struct:
// the daily slot grid, the holding-queue sentinel professional, the fallback
// service duration and the availability/redirect policies.
type BookingConfig struct {
	// Timezone used to resolve relative dates ("hoje", "amanhã", weekday names).
	Timezone string

	// HoldingProfessionalID is the sentinel professional that parks automated
	// bookings pending manual redistribution on the dashboard.
	HoldingProfessionalID string

	// Grid is the ordered list of bookable HH:MM slot starts for a service day.
	Grid []string

	// FallbackDurationMin is used when a service duration cannot be resolved.
	FallbackDurationMin int

	// AvailabilityPolicy is PolicyPerResource or PolicyPooled.
	AvailabilityPolicy string

	// RedirectToHolding forces every automated booking onto the holding queue
	// regardless of the professional the caller asked for.
	RedirectToHolding bool

	// Origin tag recorded on every appointment written through this service.
	Origin string
}

type WhatsAppConfig struct {
	BaseURL    string
	InstanceID string
	Token      string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("BOOKING_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("BOOKING_GRID", defaultGrid)
	viper.SetDefault("BOOKING_FALLBACK_DURATION_MIN", 60)
	viper.SetDefault("BOOKING_AVAILABILITY_POLICY", PolicyPerResource)
	viper.SetDefault("BOOKING_REDIRECT_TO_HOLDING", true)
	viper.SetDefault("BOOKING_ORIGIN", "Nati IA")
	viper.SetDefault("WHATS_BASE_URL", "https://api.whatswave.com.br/api")

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			Timezone:              viper.GetString("BOOKING_TIMEZONE"),
			HoldingProfessionalID: viper.GetString("BOOKING_HOLDING_PROFESSIONAL_ID"),
			Grid:                  splitGrid(viper.GetString("BOOKING_GRID")),
			FallbackDurationMin:   viper.GetInt("BOOKING_FALLBACK_DURATION_MIN"),
			AvailabilityPolicy:    viper.GetString("BOOKING_AVAILABILITY_POLICY"),
			RedirectToHolding:     viper.GetBool("BOOKING_REDIRECT_TO_HOLDING"),
			Origin:                viper.GetString("BOOKING_ORIGIN"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:    viper.GetString("WHATS_BASE_URL"),
			InstanceID: viper.GetString("WHATS_INSTANCE_ID"),
			Token:      viper.GetString("WHATS_TOKEN"),
		},
	}

	return config, nil
}

// Location resolves the configured timezone, falling back to UTC on a bad name
// rather than refusing to start.
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

const defaultGrid = "08:00,09:00,10:00,11:00,12:00,13:00,14:00,15:00,16:00,17:00,18:00,19:00,20:00,21:00"

func splitGrid(raw string) []string {
	parts := strings.Split(raw, ",")
	grid := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			grid = append(grid, p)
		}
	}
	return grid
}
