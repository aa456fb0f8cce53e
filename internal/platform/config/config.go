package config

import (
	"log"
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
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Owner login. The shop is single-operator: one set of credentials,
	// with the password stored as a bcrypt hash.
	OwnerUsername     string
	OwnerPasswordHash string

	// Login rate limit in ulule/limiter notation, e.g. "5-M".
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ponmo-books-app")
	viper.SetDefault("OWNER_USERNAME", "owner")
	viper.SetDefault("OWNER_PASSWORD_HASH", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

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

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTSecret = jwtSecret

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRY_DURATION %q, defaulting to 1h\n", jwtExpiryStr)
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.OwnerUsername = viper.GetString("OWNER_USERNAME")
	cfg.OwnerPasswordHash = viper.GetString("OWNER_PASSWORD_HASH")
	if cfg.OwnerPasswordHash == "" {
		log.Println("Warning: OWNER_PASSWORD_HASH not set. Login is disabled until it is configured.")
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
