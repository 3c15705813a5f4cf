package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode     string // Set via flag, not env
	Environment string
	LogLevel    string

	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret          string
	JwtRefreshSecret   string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	RefreshTokenMaxAge time.Duration

	// Login lockout
	MaxLoginAttempts int
	LockoutWindow    time.Duration

	// Server
	ApiPort           string
	CorsAllowedOrigin string

	// Object storage (S3-compatible). When AwsAccessKeyID is empty the local
	// filesystem fallback is used instead.
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	ImageBaseURL       string
	UploadDir          string
	UploadMaxSizeMB    int
	ImageVariantWidths []int

	// Cloudflare Turnstile (public inquiry form)
	CloudflareTurnstileSecretKey string
	CloudflareSiteVerifyURL      string

	// Geocoding (Google Maps place URL resolution). Optional.
	GeocodingAPIKey string
	GeocodingURL    string

	// Analytics conversion forwarding endpoints. Optional; empty disables the
	// corresponding platform.
	FacebookConversionsURL string
	TikTokEventsURL        string
	SnapchatEventsURL      string

	// App Defaults
	AppName     string
	GetCacheTTL time.Duration

	// Rate Limiting Defaults
	RateLimitSoftBucketSize int
	RateLimitSoftRefillRate int // tokens per second
	RateLimitHardBucketSize int
	RateLimitHardRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	// Load basic string values
	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "raf24")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.JwtRefreshSecret, err = getRequiredEnv("JWT_REFRESH_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.CorsAllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", "*")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.ImageBaseURL = getEnv("IMAGE_BASE_URL", "")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	cfg.CloudflareTurnstileSecretKey = getEnv("CLOUDFLARE_TURNSTILE_SECRET_KEY", "")
	cfg.CloudflareSiteVerifyURL = getEnv("CLOUDFLARE_SITEVERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify")
	cfg.GeocodingAPIKey = getEnv("GEOCODING_API_KEY", "")
	cfg.GeocodingURL = getEnv("GEOCODING_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	cfg.FacebookConversionsURL = getEnv("FACEBOOK_CONVERSIONS_URL", "")
	cfg.TikTokEventsURL = getEnv("TIKTOK_EVENTS_URL", "")
	cfg.SnapchatEventsURL = getEnv("SNAPCHAT_EVENTS_URL", "")
	cfg.AppName = getEnv("APP_NAME", "raf24")
	cfg.Environment = getEnv("APP_ENV", "development")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	accessTTLSeconds, err := strconv.ParseInt(getEnv("ACCESS_TOKEN_TTL_SECONDS", "900"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL_SECONDS: %w", err)
	}
	cfg.AccessTokenTTL = time.Duration(accessTTLSeconds) * time.Second

	refreshTTLHours, err := strconv.ParseInt(getEnv("REFRESH_TOKEN_TTL_HOURS", "168"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL_HOURS: %w", err)
	}
	cfg.RefreshTokenTTL = time.Duration(refreshTTLHours) * time.Hour

	refreshMaxAgeDays, err := strconv.ParseInt(getEnv("REFRESH_TOKEN_MAX_AGE_DAYS", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_MAX_AGE_DAYS: %w", err)
	}
	cfg.RefreshTokenMaxAge = time.Duration(refreshMaxAgeDays) * 24 * time.Hour

	cfg.MaxLoginAttempts, err = strconv.Atoi(getEnv("MAX_LOGIN_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_LOGIN_ATTEMPTS: %w", err)
	}

	lockoutMinutes, err := strconv.ParseInt(getEnv("LOCKOUT_WINDOW_MINUTES", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCKOUT_WINDOW_MINUTES: %w", err)
	}
	cfg.LockoutWindow = time.Duration(lockoutMinutes) * time.Minute

	cfg.UploadMaxSizeMB, err = strconv.Atoi(getEnv("UPLOAD_MAX_SIZE_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE_MB: %w", err)
	}

	getCacheTTLSeconds, err := strconv.ParseInt(getEnv("GET_CACHE_TTL_SECONDS", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GET_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.GetCacheTTL = time.Duration(getCacheTTLSeconds) * time.Second

	for _, w := range strings.Split(getEnv("IMAGE_VARIANT_WIDTHS", "480,960,1600"), ",") {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		width, convErr := strconv.Atoi(w)
		if convErr != nil || width <= 0 {
			return nil, fmt.Errorf("invalid IMAGE_VARIANT_WIDTHS entry %q", w)
		}
		cfg.ImageVariantWidths = append(cfg.ImageVariantWidths, width)
	}

	// Rate Limiting
	cfg.RateLimitSoftBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_BUCKET_SIZE", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitSoftRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_REFILL_RATE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_REFILL_RATE: %w", err)
	}
	cfg.RateLimitHardBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitHardRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
