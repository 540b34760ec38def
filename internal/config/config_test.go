package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVOY_API_KEY", "")
	t.Setenv("ENVOY_API_URL", "")
	t.Setenv("DEFAULT_ALLOWED_MINUTES", "")
	t.Setenv("DISPATCH_MODE", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.Envoy.BaseURL != defaultEnvoyAPIURL {
		t.Errorf("BaseURL: got %q, want %q", cfg.Envoy.BaseURL, defaultEnvoyAPIURL)
	}
	if cfg.Threshold.DefaultAllowedMinutes != 180 {
		t.Errorf("DefaultAllowedMinutes: got %d, want 180", cfg.Threshold.DefaultAllowedMinutes)
	}
	if cfg.Dispatch.Mode != DispatchModeAsync {
		t.Errorf("Dispatch.Mode: got %q, want %q", cfg.Dispatch.Mode, DispatchModeAsync)
	}
	if cfg.Dispatch.DedupTTL != 24*time.Hour {
		t.Errorf("Dispatch.DedupTTL: got %v, want 24h", cfg.Dispatch.DedupTTL)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled without REDIS_ADDR")
	}
	if cfg.WebhookMaxBodyBytes != defaultWebhookMaxBodyBytes {
		t.Errorf("WebhookMaxBodyBytes: got %d, want %d", cfg.WebhookMaxBodyBytes, defaultWebhookMaxBodyBytes)
	}
}

func TestLoadThresholdConfig(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
		wantErr  bool
	}{
		{name: "unset uses default", value: "", expected: 180},
		{name: "valid value", value: "60", expected: 60},
		{name: "surrounding whitespace", value: " 45 ", expected: 45},
		{name: "lower bound", value: "0", expected: 0},
		{name: "above range", value: "181", wantErr: true},
		{name: "negative", value: "-1", wantErr: true},
		{name: "not a number", value: "an hour", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEFAULT_ALLOWED_MINUTES", tt.value)

			cfg, err := LoadThresholdConfig()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidThreshold) {
					t.Fatalf("expected ErrInvalidThreshold, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DefaultAllowedMinutes != tt.expected {
				t.Errorf("got %d, want %d", cfg.DefaultAllowedMinutes, tt.expected)
			}
		})
	}
}

func TestLoadDispatchConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *DispatchConfig
		wantErr error
	}{
		{
			name: "sync mode",
			env:  map[string]string{"DISPATCH_MODE": "SYNC"},
			want: &DispatchConfig{Mode: DispatchModeSync, Timeout: defaultDispatchTimeout, DedupTTL: defaultDispatchDedupTTL},
		},
		{
			name: "custom durations",
			env:  map[string]string{"DISPATCH_TIMEOUT_SECONDS": "3", "DISPATCH_DEDUP_TTL_MINUTES": "10"},
			want: &DispatchConfig{Mode: DispatchModeAsync, Timeout: 3 * time.Second, DedupTTL: 10 * time.Minute},
		},
		{
			name:    "unknown mode",
			env:     map[string]string{"DISPATCH_MODE": "queue"},
			wantErr: ErrInvalidDispatchMode,
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"DISPATCH_TIMEOUT_SECONDS": "0"},
			wantErr: ErrInvalidDispatchValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISPATCH_MODE", "")
			t.Setenv("DISPATCH_TIMEOUT_SECONDS", "")
			t.Setenv("DISPATCH_DEDUP_TTL_MINUTES", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadDispatchConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cfg != *tt.want {
				t.Errorf("got %+v, want %+v", *cfg, *tt.want)
			}
		})
	}
}

func TestLoadRedisConfigInvalidDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Fatalf("expected ErrInvalidRedisDB, got %v", err)
	}
}

func TestValidateForRun(t *testing.T) {
	cfg := &Config{
		Envoy: &EnvoyConfig{BaseURL: defaultEnvoyAPIURL},
		Redis: &RedisConfig{Addr: "localhost:6379"},
	}
	cfg.GCloudProjectID = "project"

	if err := ValidateForRun(cfg); !errors.Is(err, ErrEnvoyAPIKeyMissing) {
		t.Fatalf("expected ErrEnvoyAPIKeyMissing, got %v", err)
	}

	cfg.Envoy.APIKey = "secret"
	if err := ValidateForRun(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q): got %v, want %v", input, got, want)
		}
	}
}
