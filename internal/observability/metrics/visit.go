package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	visitMeterName = "visit.service"
)

type VisitMetrics struct {
	eventsProcessed  metric.Int64Counter
	elapsedMinutes   metric.Int64Histogram
	dispatches       metric.Int64Counter
	dispatchDuration metric.Float64Histogram
	settingsUpdates  metric.Int64Counter
}

func NewVisitMetrics() (*VisitMetrics, error) {
	meter := otel.Meter(visitMeterName)

	eventsProcessed, err := meter.Int64Counter(
		"visit_events_total",
		metric.WithDescription("Total number of webhook events interpreted"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	elapsedMinutes, err := meter.Int64Histogram(
		"visit_elapsed_minutes",
		metric.WithDescription("Computed visit durations"),
		metric.WithUnit("min"),
		metric.WithExplicitBucketBoundaries(
			5, 15, 30, 60, 90, 120, 180, 240, 480,
		),
	)
	if err != nil {
		return nil, err
	}

	dispatches, err := meter.Int64Counter(
		"visit_note_dispatch_total",
		metric.WithDescription("Total number of private note dispatch attempts by status"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchDuration, err := meter.Float64Histogram(
		"visit_note_dispatch_duration_seconds",
		metric.WithDescription("Time spent delivering a private note"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15,
		),
	)
	if err != nil {
		return nil, err
	}

	settingsUpdates, err := meter.Int64Counter(
		"visit_settings_updates_total",
		metric.WithDescription("Total number of threshold update attempts by result"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	return &VisitMetrics{
		eventsProcessed:  eventsProcessed,
		elapsedMinutes:   elapsedMinutes,
		dispatches:       dispatches,
		dispatchDuration: dispatchDuration,
		settingsUpdates:  settingsUpdates,
	}, nil
}

func (m *VisitMetrics) RecordEvent(ctx context.Context, kind, outcome string) {
	m.eventsProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *VisitMetrics) RecordElapsedMinutes(ctx context.Context, minutes int) {
	m.elapsedMinutes.Record(ctx, int64(minutes))
}

func (m *VisitMetrics) RecordDispatch(ctx context.Context, status string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *VisitMetrics) RecordSettingsUpdate(ctx context.Context, result string) {
	m.settingsUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}
