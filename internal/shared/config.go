package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	GeminiBase  string
	GeminiKey   string
	GeminiModel string
	JWTSecret   string
	TokenTTL    time.Duration
	CacheTTL    time.Duration
	ChatMemTTL  time.Duration
	SeedWorkers int
	SeedFile    string
	AdminEmail  string
	AdminPass   string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/smartstay?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		GeminiBase:  env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiKey:   env("GEMINI_API_KEY", ""),
		GeminiModel: env("GEMINI_MODEL", "gemini-flash-lite-latest"),
		JWTSecret:   env("JWT_SECRET", ""),
		TokenTTL:    time.Duration(atoi("TOKEN_TTL_HOURS", 24)) * time.Hour,
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		ChatMemTTL:  time.Duration(atoi("CHAT_MEMORY_TTL_SECONDS", 1800)) * time.Second,
		SeedWorkers: atoi("SEED_WORKERS", 8),
		SeedFile:    env("SEED_FILE", "seed/hotels.json"),
		AdminEmail:  env("ADMIN_EMAIL", ""),
		AdminPass:   env("ADMIN_PASSWORD", ""),
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; chat relay will answer with its failure message")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; using an insecure development secret")
		c.JWTSecret = "dev-secret-do-not-use"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
