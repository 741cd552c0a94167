package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverBadger   = "badger"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	StoreDriver    string
	BadgerPath     string
	MigrationsPath string

	// Rates
	PivotCurrency       string
	RateProviderURL     string
	RateProviderTimeout time.Duration
	RefreshInterval     time.Duration
	RefreshOnStartup    bool

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimit          string
	ShutdownTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("BADGER_PATH", "./data")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PIVOT_CURRENCY", "EUR")
	v.SetDefault("RATE_PROVIDER_URL", "https://api.frankfurter.app")
	v.SetDefault("RATE_PROVIDER_TIMEOUT", "10s")
	v.SetDefault("REFRESH_INTERVAL", "15m")
	v.SetDefault("REFRESH_ON_STARTUP", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      v.GetString("PGSQL_URL"),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		BadgerPath:       v.GetString("BADGER_PATH"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		PivotCurrency:    strings.ToUpper(strings.TrimSpace(v.GetString("PIVOT_CURRENCY"))),
		RateProviderURL:  strings.TrimRight(v.GetString("RATE_PROVIDER_URL"), "/"),
		RefreshOnStartup: v.GetBool("REFRESH_ON_STARTUP"),
		RateLimit:        v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.RateProviderTimeout = durationOrDefault(v, "RATE_PROVIDER_TIMEOUT", 10*time.Second)
	cfg.RefreshInterval = durationOrDefault(v, "REFRESH_INTERVAL", 15*time.Minute)
	cfg.ShutdownTimeout = durationOrDefault(v, "SHUTDOWN_TIMEOUT", 10*time.Second)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if len(cfg.PivotCurrency) != 3 {
		return nil, fmt.Errorf("PIVOT_CURRENCY must be a 3-letter code, got %q", cfg.PivotCurrency)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverBadger:
		if cfg.BadgerPath == "" {
			return nil, fmt.Errorf("BADGER_PATH must be set when STORE_DRIVER=%s", StoreDriverBadger)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverBadger)
	}

	if cfg.RateProviderURL == "" {
		return nil, fmt.Errorf("RATE_PROVIDER_URL must not be empty")
	}

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
