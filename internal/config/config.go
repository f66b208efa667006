package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	ServerURL string // HELM_SERVER_URL (default "http://localhost:8080")
	NATSURL   string // HELM_NATS_URL (optional, empty = no live events)
	AuthToken string // HELM_AUTH_TOKEN (optional, empty = auth disabled)

	NotifyTTL time.Duration // HELM_NOTIFY_TTL (default 6s; 0 = notices never auto-dismiss)
}

func Load() (*Config, error) {
	c := &Config{
		ServerURL: envOrDefault("HELM_SERVER_URL", "http://localhost:8080"),
		NATSURL:   os.Getenv("HELM_NATS_URL"),
		AuthToken: os.Getenv("HELM_AUTH_TOKEN"),
	}

	ttlStr := envOrDefault("HELM_NOTIFY_TTL", "6s")
	if ttlStr != "" {
		d, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("HELM_NOTIFY_TTL: %w", err)
		}
		c.NotifyTTL = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
