package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Redis assignment cache; empty addr disables caching.
	RedisAddr string
	CacheTTL  time.Duration

	BlobBasePath string // worksheet scan uploads

	AuthSecret string // HMAC for local JWTs

	CORSOrigins []string

	// Fuzzy slack for free-text answers; 0 disables.
	TextMaxEditDistance int

	// OCR for uploaded worksheet scans; empty disables and scans fall
	// back to manual review. Example: "swe" or "swe+eng".
	OCRLang string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:            envOr("HTTP_ADDR", ":8080"),
		DBDriver:            envOr("DB_DRIVER", "sqlite"),
		DBDSN:               envOr("DB_DSN", ""),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		CacheTTL:            envDuration("CACHE_TTL", 5*time.Minute),
		BlobBasePath:        envOr("BLOB_BASE_PATH", "./data"),
		AuthSecret:          envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		CORSOrigins:         csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		TextMaxEditDistance: envInt("TEXT_MAX_EDIT_DISTANCE", 1),
		OCRLang:             os.Getenv("OCR_LANG"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return def
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
