package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	dispatchModeEnv     = "DISPATCH_MODE"
	dispatchTimeoutEnv  = "DISPATCH_TIMEOUT_SECONDS"
	dispatchDedupTTLEnv = "DISPATCH_DEDUP_TTL_MINUTES"

	defaultDispatchTimeout  = 15 * time.Second
	defaultDispatchDedupTTL = 24 * time.Hour
)

type DispatchMode string

const (
	DispatchModeAsync DispatchMode = "async"
	DispatchModeSync  DispatchMode = "sync"
)

type DispatchConfig struct {
	Mode     DispatchMode
	Timeout  time.Duration
	DedupTTL time.Duration
}

func LoadDispatchConfig() (*DispatchConfig, error) {
	mode := DispatchModeAsync
	if v := os.Getenv(dispatchModeEnv); v != "" {
		switch DispatchMode(strings.ToLower(v)) {
		case DispatchModeAsync:
			mode = DispatchModeAsync
		case DispatchModeSync:
			mode = DispatchModeSync
		default:
			return nil, ErrInvalidDispatchMode
		}
	}

	timeout, err := positiveDuration(dispatchTimeoutEnv, time.Second, defaultDispatchTimeout)
	if err != nil {
		return nil, err
	}

	dedupTTL, err := positiveDuration(dispatchDedupTTLEnv, time.Minute, defaultDispatchDedupTTL)
	if err != nil {
		return nil, err
	}

	return &DispatchConfig{
		Mode:     mode,
		Timeout:  timeout,
		DedupTTL: dedupTTL,
	}, nil
}

func positiveDuration(env string, unit, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(env)
	if v == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return 0, ErrInvalidDispatchValue
	}

	return time.Duration(parsed) * unit, nil
}
