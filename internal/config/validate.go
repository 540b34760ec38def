package config

// ValidateForRun checks the settings the server cannot start without.
func ValidateForRun(cfg *Config) error {
	if err := cfg.Envoy.Validate(); err != nil {
		return err
	}
	return validatePlatform(cfg)
}
