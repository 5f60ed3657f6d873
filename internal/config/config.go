// Package config loads server settings from the environment.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Default language for chunk schemes when the request names none.
	DefaultLang string

	// Upload limit for CoNLL-U payloads.
	MaxBodyBytes int64
}

func Load() Config {
	cfg := Config{
		Port:         envOr("PORT", "8097"),
		DefaultLang:  envOr("DEPDOC_LANG", "en"),
		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 4194304), // 4MB
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4194304
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
