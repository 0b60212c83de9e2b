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
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// SiteLocation is the hotel's local timezone; daily limits reset at its midnight.
	SiteTimezone string
	SiteLocation *time.Location

	// RateLimit uses the ulule formatted notation, e.g. "5-M".
	LoginRateLimit     string
	RateLimit          string
	CORSAllowedOrigins []string

	// Event bus. An empty AMQPURL means events are only logged.
	AMQPURL      string
	AMQPExchange string

	// First owner account, created at startup when all three are set.
	BootstrapHotelID  string
	BootstrapUsername string
	BootstrapPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "hotel-ops-app")
	viper.SetDefault("SITE_TIMEZONE", "UTC")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "hotel_ops.events")
	viper.SetDefault("BOOTSTRAP_HOTEL_ID", "")
	viper.SetDefault("BOOTSTRAP_OWNER_USERNAME", "")
	viper.SetDefault("BOOTSTRAP_OWNER_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

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

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "hotel-ops-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.SiteTimezone = viper.GetString("SITE_TIMEZONE")
	loc, err := time.LoadLocation(cfg.SiteTimezone)
	if err != nil {
		log.Printf("Warning: Unknown SITE_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.SiteTimezone)
		cfg.SiteTimezone = "UTC"
		loc = time.UTC
	}
	cfg.SiteLocation = loc

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Domain events will only be logged.")
	}

	cfg.BootstrapHotelID = viper.GetString("BOOTSTRAP_HOTEL_ID")
	cfg.BootstrapUsername = viper.GetString("BOOTSTRAP_OWNER_USERNAME")
	cfg.BootstrapPassword = viper.GetString("BOOTSTRAP_OWNER_PASSWORD")

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

// HasBootstrapOwner reports whether an owner account should be seeded.
func (c *Config) HasBootstrapOwner() bool {
	return c.BootstrapHotelID != "" && c.BootstrapUsername != "" && c.BootstrapPassword != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
