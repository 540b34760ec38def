//go:build !gcloud

package main

import (
	"context"
	"os"

	"github.com/KasumiMercury/visit-overstay/internal/config"
	"github.com/KasumiMercury/visit-overstay/internal/observability"
	"github.com/KasumiMercury/visit-overstay/internal/observability/logging"
)

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "visit-overstay"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      config.ParseLogLevel(os.Getenv("LOG_LEVEL")),
	})
}
