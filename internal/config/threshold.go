package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

const (
	defaultAllowedMinutesEnv = "DEFAULT_ALLOWED_MINUTES"

	defaultAllowedMinutes = 180
)

type ThresholdConfig struct {
	DefaultAllowedMinutes int
}

func LoadThresholdConfig() (*ThresholdConfig, error) {
	minutes := defaultAllowedMinutes
	if v := strings.TrimSpace(os.Getenv(defaultAllowedMinutesEnv)); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || !domain.ThresholdSetting(parsed).InRange() {
			return nil, ErrInvalidThreshold
		}
		minutes = parsed
	}

	return &ThresholdConfig{
		DefaultAllowedMinutes: minutes,
	}, nil
}
