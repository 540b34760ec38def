package config

import "errors"

var (
	ErrEnvoyAPIKeyMissing   = errors.New("ENVOY_API_KEY is required")
	ErrEnvoyAPIURLMissing   = errors.New("ENVOY_API_URL must not be empty")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidThreshold     = errors.New("DEFAULT_ALLOWED_MINUTES must be an integer between 0 and 180")
	ErrInvalidDispatchMode  = errors.New("DISPATCH_MODE must be either async or sync")
	ErrInvalidDispatchValue = errors.New("dispatch timeout and dedup TTL must be positive integers")
)
