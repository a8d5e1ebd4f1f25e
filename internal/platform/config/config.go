package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string

	// Ledger
	BaseCurrency     string
	AccountRolesFile string
	AgingBuckets     string // comma-separated widths in days

	// Remote FX provider, optional
	FXProviderURL  string
	FXTokenURL     string
	FXClientID     string
	FXClientSecret string
	FXTimeout      time.Duration
	FXCacheSize    int

	// HTTP
	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
}

// FXProviderEnabled reports whether a remote FX provider is configured.
func (c *Config) FXProviderEnabled() bool {
	return c.FXProviderURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("BASE_CURRENCY", "AED")
	viper.SetDefault("ACCOUNT_ROLES_FILE", "config/account_roles.yaml")
	viper.SetDefault("AGING_BUCKETS", "30,30,30")
	viper.SetDefault("FX_PROVIDER_URL", "")
	viper.SetDefault("FX_TOKEN_URL", "")
	viper.SetDefault("FX_CLIENT_ID", "")
	viper.SetDefault("FX_CLIENT_SECRET", "")
	viper.SetDefault("FX_TIMEOUT", "3s")
	viper.SetDefault("FX_CACHE_SIZE", 1024)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	cfg.AccountRolesFile = viper.GetString("ACCOUNT_ROLES_FILE")
	cfg.AgingBuckets = viper.GetString("AGING_BUCKETS")

	cfg.FXProviderURL = viper.GetString("FX_PROVIDER_URL")
	cfg.FXTokenURL = viper.GetString("FX_TOKEN_URL")
	cfg.FXClientID = viper.GetString("FX_CLIENT_ID")
	cfg.FXClientSecret = viper.GetString("FX_CLIENT_SECRET")
	if cfg.FXProviderURL != "" && (cfg.FXClientID == "" || cfg.FXTokenURL == "") {
		log.Println("Warning: FX_PROVIDER_URL set without FX_CLIENT_ID/FX_TOKEN_URL. The FX client will refuse to start.")
	}

	fxTimeoutStr := viper.GetString("FX_TIMEOUT")
	fxTimeout, err := time.ParseDuration(fxTimeoutStr)
	if err != nil || fxTimeout <= 0 {
		fxTimeout = 3 * time.Second
		log.Printf("Warning: Invalid value for FX_TIMEOUT ('%s'). Defaulting to %s.\n", fxTimeoutStr, fxTimeout.String())
	}
	cfg.FXTimeout = fxTimeout
	cfg.FXCacheSize = viper.GetInt("FX_CACHE_SIZE")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}
