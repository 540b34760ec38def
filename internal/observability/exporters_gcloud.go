//go:build gcloud

package observability

import (
	"context"
	"errors"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errProjectIDMissing = errors.New("GCP project id is required for cloud exporters")

func newSpanExporter(_ context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	if cfg.GCPProjectID == "" {
		return nil, errProjectIDMissing
	}

	exporter, err := texporter.New(texporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return nil, err
	}
	return exporter, nil
}

func newMetricExporter(_ context.Context, cfg Config) (sdkmetric.Exporter, error) {
	if cfg.GCPProjectID == "" {
		return nil, errProjectIDMissing
	}

	return mexporter.New(mexporter.WithProjectID(cfg.GCPProjectID))
}
