package metrics

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupManualReader(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	return reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestVisitMetricsCounters(t *testing.T) {
	reader := setupManualReader(t)

	m, err := NewVisitMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	ctx := context.Background()
	m.RecordEvent(ctx, "sign_out", "overstayed")
	m.RecordEvent(ctx, "sign_in", "no_action_needed")
	m.RecordDispatch(ctx, "delivered", 20*time.Millisecond)
	m.RecordSettingsUpdate(ctx, "ok")
	m.RecordElapsedMinutes(ctx, 75)

	if got := collectSum(t, reader, "visit_events_total"); got != 2 {
		t.Errorf("visit_events_total: got %d, want 2", got)
	}
	if got := collectSum(t, reader, "visit_note_dispatch_total"); got != 1 {
		t.Errorf("visit_note_dispatch_total: got %d, want 1", got)
	}
	if got := collectSum(t, reader, "visit_settings_updates_total"); got != 1 {
		t.Errorf("visit_settings_updates_total: got %d, want 1", got)
	}
}

func TestHTTPMetricsRecordRequest(t *testing.T) {
	reader := setupManualReader(t)

	m, err := NewHTTPMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	m.RecordRequest(context.Background(), "POST", "/webhook", 200, 5*time.Millisecond)

	if got := collectSum(t, reader, "http_server_requests_total"); got != 1 {
		t.Errorf("http_server_requests_total: got %d, want 1", got)
	}
}
