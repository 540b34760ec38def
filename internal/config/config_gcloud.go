//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

func validatePlatform(cfg *Config) error {
	var errs []error

	if cfg.GCloudProjectID == "" {
		errs = append(errs, errors.New("GOOGLE_CLOUD_PROJECT or GCLOUD_PROJECT_ID is required"))
	}
	if !cfg.Redis.Enabled() {
		errs = append(errs, errors.New("REDIS_ADDR is required when running on Cloud Run"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("gcloud configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
