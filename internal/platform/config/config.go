package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Record store backends.
const (
	RecordStorePostgres  = "postgres"
	RecordStoreFirestore = "firestore"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer = "simple-invoice-app"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	RecordStore   string
	DatabaseURL   string
	EnableDBCheck bool
	MigrationsURL string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External identity providers
	GoogleClientID          string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret      string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL       string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL         string `mapstructure:"FRONTEND_BASE_URL"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	PosthogAPIKey   string
	PosthogEndpoint string
	AuthRateLimit   string // ulule/limiter formatted rate, e.g. "10-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RECORD_STORE", RecordStorePostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")

	// Environment variables override the defaults (and the .env values loaded above).
	viper.AutomaticEnv()

	cfg := &Config{
		Port:                    viper.GetString("PORT"),
		IsProduction:            viper.GetBool("IS_PRODUCTION"),
		RecordStore:             strings.ToLower(strings.TrimSpace(viper.GetString("RECORD_STORE"))),
		DatabaseURL:             viper.GetString("PGSQL_URL"),
		EnableDBCheck:           viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsURL:           viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:               viper.GetString("JWT_SECRET"),
		JWTIssuer:               viper.GetString("JWT_ISSUER"),
		GoogleClientID:          viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:      viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:       viper.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:         viper.GetString("FRONTEND_BASE_URL"),
		FirebaseProjectID:       viper.GetString("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: viper.GetString("FIREBASE_CREDENTIALS_FILE"),
		PosthogAPIKey:           viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:         viper.GetString("POSTHOG_ENDPOINT"),
		AuthRateLimit:           viper.GetString("AUTH_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.RecordStore {
	case RecordStorePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case RecordStoreFirestore:
		if cfg.FirebaseProjectID == "" {
			return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required when RECORD_STORE is %q", RecordStoreFirestore)
		}
	default:
		return nil, fmt.Errorf("invalid RECORD_STORE %q: must be %q or %q", cfg.RecordStore, RecordStorePostgres, RecordStoreFirestore)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// JWT expiry (e.g., "60m", "24h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	// Log warnings for missing identity provider settings
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google sign-in will not function.")
	}
	if cfg.FirebaseProjectID == "" {
		log.Println("Warning: FIREBASE_PROJECT_ID not set. Firebase sign-in is disabled.")
	}

	return cfg, nil
}

// GoogleSignInEnabled reports whether the Google OAuth settings are complete.
func (c *Config) GoogleSignInEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

// FirebaseEnabled reports whether a Firebase project is configured.
func (c *Config) FirebaseEnabled() bool {
	return c.FirebaseProjectID != ""
}
