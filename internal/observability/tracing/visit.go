package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const visitTracerName = "github.com/KasumiMercury/visit-overstay/internal/service/visit"

func VisitTracer() trace.Tracer {
	return otel.Tracer(visitTracerName)
}

func StartInterpretSpan(ctx context.Context, kind, schemaVersion string) (context.Context, trace.Span) {
	return VisitTracer().Start(ctx, "visit.interpret",
		trace.WithAttributes(
			attribute.String("visit.event_kind", kind),
			attribute.String("visit.schema_version", schemaVersion),
		),
	)
}

func RecordInterpretResult(span trace.Span, outcome string, elapsedMinutes, thresholdMinutes, overstayMinutes int, reason string) {
	span.SetAttributes(
		attribute.String("visit.outcome", outcome),
		attribute.Int("visit.elapsed_minutes", elapsedMinutes),
		attribute.Int("visit.threshold_minutes", thresholdMinutes),
		attribute.Int("visit.overstay_minutes", overstayMinutes),
	)
	if reason != "" {
		span.SetStatus(codes.Error, reason)
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func StartDispatchSpan(ctx context.Context, entryID, eventKey string) (context.Context, trace.Span) {
	return VisitTracer().Start(ctx, "visit.dispatch",
		trace.WithAttributes(
			attribute.String("entry_id", entryID),
			attribute.String("dispatch.event_key", eventKey),
		),
	)
}

func RecordDispatchResult(span trace.Span, status string, err error) {
	span.SetAttributes(attribute.String("dispatch.status", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return VisitTracer().Start(ctx, "visit.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordExternalAPIResult(span trace.Span, statusCode int, err error) {
	if statusCode > 0 {
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest propagates the span context of ctx onto an outbound request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// ExtractFromHTTPRequest returns ctx carrying the remote span context of an inbound request.
func ExtractFromHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(req.Header))
}
