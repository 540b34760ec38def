package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/visit-overstay/internal/config"
	"github.com/KasumiMercury/visit-overstay/internal/domain"
	"github.com/KasumiMercury/visit-overstay/internal/infra/envoy"
	"github.com/KasumiMercury/visit-overstay/internal/observability/metrics"
	"github.com/KasumiMercury/visit-overstay/internal/observability/tracing"
)

type NotifyRequest struct {
	EntryID  string
	EventKey string
	Message  string
}

// Dispatcher delivers each event's note at most once. Delivery failures are
// logged and dropped; the ledger mark is never rolled back.
type Dispatcher struct {
	ledger  domain.DispatchLedger
	notes   envoy.NoteRepository
	mode    config.DispatchMode
	timeout time.Duration
	metrics *metrics.VisitMetrics

	inflight sync.WaitGroup
}

func NewDispatcher(
	ledger domain.DispatchLedger,
	notes envoy.NoteRepository,
	cfg *config.DispatchConfig,
	visitMetrics *metrics.VisitMetrics,
) *Dispatcher {
	return &Dispatcher{
		ledger:  ledger,
		notes:   notes,
		mode:    cfg.Mode,
		timeout: cfg.Timeout,
		metrics: visitMetrics,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, req NotifyRequest) domain.DispatchResult {
	start := time.Now()
	result := domain.DispatchResult{
		EntryID:  req.EntryID,
		EventKey: req.EventKey,
	}

	if req.EntryID == "" {
		result.Status = domain.DispatchSkipped
		slog.DebugContext(ctx, "dispatch skipped without entry id")
		d.record(ctx, result, start)
		return result
	}

	key := req.EventKey
	if key == "" {
		key = req.EntryID
		result.EventKey = key
	}

	marked, err := d.ledger.MarkDispatched(ctx, key)
	if err != nil {
		result.Status = domain.DispatchFailed
		result.Err = fmt.Errorf("%w: ledger: %w", domain.ErrDispatchFailed, err)
		slog.ErrorContext(ctx, "dispatch ledger unavailable, note not sent",
			slog.String("entry_id", req.EntryID),
			slog.String("event_key", key),
			slog.String("error", err.Error()),
		)
		d.record(ctx, result, start)
		return result
	}
	if !marked {
		result.Status = domain.DispatchDuplicate
		slog.InfoContext(ctx, "duplicate event, note already dispatched",
			slog.String("entry_id", req.EntryID),
			slog.String("event_key", key),
		)
		d.record(ctx, result, start)
		return result
	}

	if d.mode == config.DispatchModeSync {
		result = d.deliver(ctx, result, req.Message)
		d.record(ctx, result, start)
		return result
	}

	d.inflight.Add(1)
	detached := context.WithoutCancel(ctx)
	go func(pending domain.DispatchResult) {
		defer d.inflight.Done()
		delivered := d.deliver(detached, pending, req.Message)
		d.record(detached, delivered, start)
	}(result)

	queued := result
	queued.Status = domain.DispatchQueued
	return queued
}

func (d *Dispatcher) deliver(ctx context.Context, result domain.DispatchResult, message string) domain.DispatchResult {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ctx, span := tracing.StartDispatchSpan(ctx, result.EntryID, result.EventKey)
	defer span.End()

	if err := d.notes.AddPrivateNote(ctx, result.EntryID, message); err != nil {
		result.Status = domain.DispatchFailed
		result.Err = fmt.Errorf("%w: %w", domain.ErrDispatchFailed, err)
		slog.WarnContext(ctx, "note delivery failed, dropping",
			slog.String("entry_id", result.EntryID),
			slog.String("event_key", result.EventKey),
			slog.String("error", err.Error()),
		)
	} else {
		result.Status = domain.DispatchDelivered
		slog.InfoContext(ctx, "note delivered",
			slog.String("entry_id", result.EntryID),
			slog.String("event_key", result.EventKey),
		)
	}

	tracing.RecordDispatchResult(span, result.Status.String(), result.Err)
	return result
}

func (d *Dispatcher) record(ctx context.Context, result domain.DispatchResult, start time.Time) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(ctx, result.Status.String(), time.Since(start))
	}
}

// Wait blocks until detached deliveries finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
