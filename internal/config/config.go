package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	ArchiveDir  string
	OutDir      string
	Target      string
	ContextSize int
	Seed        int64
	DatabaseURL string
	NatsURL     string
	NatsToken   string
	LogLevel    string
}

func Load() Config {
	return Config{
		Port:        envInt("DMCORPUS_PORT", 8760),
		ArchiveDir:  envStr("DMCORPUS_ARCHIVE_DIR", ""),
		OutDir:      envStr("DMCORPUS_OUT_DIR", "."),
		Target:      envStr("DMCORPUS_TARGET", ""),
		ContextSize: envInt("DMCORPUS_CONTEXT_SIZE", 10),
		Seed:        envInt64("DMCORPUS_SEED", 1),
		DatabaseURL: envStr("DATABASE_URL", ""),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
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
