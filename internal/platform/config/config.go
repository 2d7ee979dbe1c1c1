package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates all service configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Server    Server
	Database  Database
	Redis     Redis
	Resolver  Resolver
	Upload    Upload
	RateLimit RateLimit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Database configures the PostgreSQL connection. An empty URL switches the
// service to in-memory stores (development and tests).
type Database struct {
	URL string
}

// Redis configures the optional Redis connection used by the rate limiter.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Resolver configures the external generative search client used for SDS
// document lookups.
type Resolver struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Upload configures SDS file upload storage. S3Bucket selects the S3 driver;
// otherwise files land under Dir on the local filesystem.
type Upload struct {
	Dir        string
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	MaxBytes   int64
}

// RateLimit configures the resolve-endpoint limiter.
type RateLimit struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: envOr("HAZCOM_ADDR", ":8080"),
		},
		Database: Database{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Resolver: Resolver{
			APIKey:  os.Getenv("SDS_LOOKUP_API_KEY"),
			BaseURL: envOr("SDS_LOOKUP_BASE_URL", "https://api.openai.com/v1"),
			Model:   envOr("SDS_LOOKUP_MODEL", "gpt-4o-mini"),
			Timeout: envDuration("SDS_LOOKUP_TIMEOUT", 30*time.Second),
		},
		Upload: Upload{
			Dir:        envOr("UPLOAD_DIR", "data/sds-uploads"),
			S3Bucket:   os.Getenv("UPLOAD_S3_BUCKET"),
			S3Region:   envOr("UPLOAD_S3_REGION", "us-east-1"),
			S3Endpoint: os.Getenv("UPLOAD_S3_ENDPOINT"),
			MaxBytes:   envInt64("UPLOAD_MAX_BYTES", 25<<20),
		},
		RateLimit: RateLimit{
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
			Limit:    envInt("RATE_LIMIT_RESOLVE_PER_MINUTE", 30),
			Window:   time.Minute,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
