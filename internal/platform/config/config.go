package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment.
type Config struct {
	Addr          string
	JWTSigningKey string
	DemoMode      bool

	PostgresURL string
	Redis       RedisConfig

	Recall    RecallConfig
	RateLimit RateLimitConfig

	KafkaBrokers []string
	AuditTopic   string
}

// RedisConfig holds connection settings for the shared Redis instance.
// An empty URL means Redis is not configured and in-memory fallbacks are used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RecallConfig controls the recall registry integration.
type RecallConfig struct {
	// BaseURL of the recall registry API.
	BaseURL string
	// VINDecoderURL of the VIN decode API. Decode failures are non-fatal.
	VINDecoderURL string
	// Timeout bounds each upstream call independently of the caller's deadline.
	Timeout time.Duration
	// CacheTTL is how long a fetched recall result stays fresh.
	CacheTTL time.Duration
}

// RateLimitConfig controls per-caller limits on the recall lookup endpoint.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("CURBO_ADDR", ":8080"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		DemoMode:      os.Getenv("DEMO_MODE") == "true",
		PostgresURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Recall: RecallConfig{
			BaseURL:       envOr("RECALL_API_URL", "https://api.nhtsa.gov/recalls/recallsByVehicle"),
			VINDecoderURL: envOr("VIN_DECODER_URL", "https://vpic.nhtsa.dot.gov/api/vehicles/DecodeVinValues"),
			Timeout:       envDuration("RECALL_API_TIMEOUT", 10*time.Second),
			CacheTTL:      envDuration("RECALL_CACHE_TTL", 7*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Requests: envInt("RECALL_RATE_LIMIT", 10),
			Window:   envDuration("RECALL_RATE_WINDOW", time.Minute),
		},
		AuditTopic: envOr("AUDIT_TOPIC", "curbo.audit.decisions"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
