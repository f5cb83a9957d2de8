package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	StoreDriver   string
	DBURL         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StoreCacheTTL time.Duration

	JWTSecret     string
	DeviceTTLDays int

	CarouselPeriod     time.Duration
	ViewIdleTTL        time.Duration
	RateLimitPerMinute int
	IPLimitPerMinute   int
	CORSOrigins        []string
	MaxBodyBytes       int64

	LogFile      string
	OTelEnabled  bool
	OTelEndpoint string
	ServiceName  string
}

// Load reads the environment, after merging an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DBURL:         buildDBURL(),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		StoreCacheTTL: time.Duration(getEnvInt("STORE_CACHE_TTL_MS", 0)) * time.Millisecond,

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		DeviceTTLDays: getEnvInt("DEVICE_TTL_DAYS", 365),

		CarouselPeriod:     time.Duration(getEnvInt("CAROUSEL_PERIOD_MS", 5000)) * time.Millisecond,
		ViewIdleTTL:        time.Duration(getEnvInt("VIEW_IDLE_TTL_MINUTES", 30)) * time.Minute,
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		IPLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_IP_MINUTE", 600),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 64<<10)),

		LogFile:      getEnv("LOG_FILE", ""),
		OTelEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ServiceName:  getEnv("SERVICE_NAME", "opay-views"),
	}
}

func (c Config) DeviceTTL() time.Duration {
	return time.Duration(c.DeviceTTLDays) * 24 * time.Hour
}

func buildDBURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "opay")
	pass := getEnv("DB_PASSWORD", "opay")
	name := getEnv("DB_NAME", "opay")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer in env, using default", "key", key, "value", v)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	return fallback
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
