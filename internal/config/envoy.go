package config

import (
	"os"
	"strconv"
	"time"
)

const (
	envoyAPIKeyEnv          = "ENVOY_API_KEY"
	envoyAPIURLEnv          = "ENVOY_API_URL"
	envoyHTTPTimeoutEnv     = "ENVOY_HTTP_TIMEOUT_SECONDS"
	defaultEnvoyAPIURL      = "https://api.envoy.com/v1"
	defaultEnvoyHTTPTimeout = 10 * time.Second
)

type EnvoyConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func LoadEnvoyConfig() *EnvoyConfig {
	baseURL := os.Getenv(envoyAPIURLEnv)
	if baseURL == "" {
		baseURL = defaultEnvoyAPIURL
	}

	timeout := defaultEnvoyHTTPTimeout
	if v := os.Getenv(envoyHTTPTimeoutEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	return &EnvoyConfig{
		APIKey:  os.Getenv(envoyAPIKeyEnv),
		BaseURL: baseURL,
		Timeout: timeout,
	}
}

func (c *EnvoyConfig) Validate() error {
	if c == nil || c.APIKey == "" {
		return ErrEnvoyAPIKeyMissing
	}
	if c.BaseURL == "" {
		return ErrEnvoyAPIURLMissing
	}
	return nil
}
