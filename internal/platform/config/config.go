package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	JWTSecret     string
	JWTIssuer     string
	AllowedOrigin string

	// JournalNumberPrefix is prepended to the 6-digit sequence, e.g. "JV" -> JV000042.
	JournalNumberPrefix string

	// Account listing cache
	AccountCacheTTL time.Duration

	// Redis (cache + asynq)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// Snapshot worker
	WorkerConcurrency int
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "crafterp-gateway")
	viper.SetDefault("ALLOWED_ORIGIN", "*")
	viper.SetDefault("JOURNAL_NUMBER_PREFIX", "JV")
	viper.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("WORKER_CONCURRENCY", 10)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.AllowedOrigin = viper.GetString("ALLOWED_ORIGIN")

	cfg.JournalNumberPrefix = viper.GetString("JOURNAL_NUMBER_PREFIX")

	cacheTTLStr := viper.GetString("ACCOUNT_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for ACCOUNT_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
	}
	cfg.AccountCacheTTL = cacheTTL

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.WorkerConcurrency = viper.GetInt("WORKER_CONCURRENCY")

	return cfg, nil
}
