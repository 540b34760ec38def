package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const defaultWebhookMaxBodyBytes = 1 << 20

type Config struct {
	Port                string
	GCloudProjectID     string
	WebhookMaxBodyBytes int64
	Envoy               *EnvoyConfig
	Redis               *RedisConfig
	Threshold           *ThresholdConfig
	Dispatch            *DispatchConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxBodyBytes := int64(defaultWebhookMaxBodyBytes)
	if v := os.Getenv("WEBHOOK_MAX_BODY_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			maxBodyBytes = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	thresholdConfig, err := LoadThresholdConfig()
	if err != nil {
		return nil, err
	}

	dispatchConfig, err := LoadDispatchConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                port,
		GCloudProjectID:     gcloudProjectID(),
		WebhookMaxBodyBytes: maxBodyBytes,
		Envoy:               LoadEnvoyConfig(),
		Redis:               redisConfig,
		Threshold:           thresholdConfig,
		Dispatch:            dispatchConfig,
	}, nil
}

func gcloudProjectID() string {
	if id := os.Getenv("GOOGLE_CLOUD_PROJECT"); id != "" {
		return id
	}
	return os.Getenv("GCLOUD_PROJECT_ID")
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
