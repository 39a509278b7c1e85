package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for the MediCamp API.
type Config struct {
	Environment        string
	Addr               string
	MongoURI           string
	MongoDatabase      string
	TokenSecret        string
	TokenTTL           time.Duration
	StripeSecretKey    string
	StripeBaseURL      string
	PaymentCurrency    string
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// Load constructs a Config from environment variables.
func Load() Config {
	return Config{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":3000"),
		MongoURI:           GetString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      GetString("MONGO_DATABASE", "medicamp"),
		TokenSecret:        GetString("ACCESS_TOKEN_SECRET", "supersecuresecret"),
		TokenTTL:           time.Duration(GetInt("ACCESS_TOKEN_TTL_MIN", 60)) * time.Minute,
		StripeSecretKey:    GetString("STRIPE_SECRET_KEY", ""),
		StripeBaseURL:      GetString("STRIPE_BASE_URL", "https://api.stripe.com/v1"),
		PaymentCurrency:    GetString("PAYMENT_CURRENCY", "usd"),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}

// GetString retrieves an environment variable or returns a fallback when unset.
func GetString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetInt retrieves an environment variable as integer or returns fallback.
func GetInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}

// GetBool retrieves an environment variable as bool or returns fallback.
func GetBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}
