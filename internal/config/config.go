package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port string
	Host string

	// Auth
	JWTSecret string

	// Cache
	SuccessTTL      time.Duration
	FilteredTTL     time.Duration
	CacheMaxEntries int

	// Reference datasets
	IPDatasetPath      string
	CompanyDatasetPath string
	MMDBPath           string

	// Visit persistence
	StoreType      string // "sqlite", "mysql", empty = disabled
	StoreDSN       string
	VisitRetention time.Duration
}

func Load() *Config {
	return &Config{
		Port:      envOrDefault("PORT", "8080"),
		Host:      envOrDefault("HOST", "0.0.0.0"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		SuccessTTL:      envIntDuration("SUCCESS_TTL_HOURS", 24) * time.Hour,
		FilteredTTL:     envIntDuration("FILTERED_TTL_MINUTES", 60) * time.Minute,
		CacheMaxEntries: envIntOrDefault("CACHE_MAX_ENTRIES", 10000),

		IPDatasetPath:      os.Getenv("IP_DATASET_PATH"),
		CompanyDatasetPath: os.Getenv("COMPANY_DATASET_PATH"),
		MMDBPath:           envOrDefault("MMDB_PATH", "data/GeoLite2-ASN.mmdb"),

		StoreType:      os.Getenv("STORE_TYPE"),
		StoreDSN:       envOrDefault("STORE_DSN", "data/leadscope.db"),
		VisitRetention: envIntDuration("VISIT_RETENTION_DAYS", 90) * 24 * time.Hour,
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envIntDuration(key string, def int) time.Duration {
	return time.Duration(envIntOrDefault(key, def))
}
