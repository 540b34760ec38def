package visit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
	"github.com/KasumiMercury/visit-overstay/internal/observability/metrics"
	"github.com/KasumiMercury/visit-overstay/internal/observability/tracing"
	"github.com/KasumiMercury/visit-overstay/internal/service/duration"
)

const (
	thresholdSourceEvent = "event"
	thresholdSourceStore = "store"
)

type Interpreter struct {
	store      domain.ThresholdStore
	calculator *duration.Calculator
	metrics    *metrics.VisitMetrics
}

func NewInterpreter(store domain.ThresholdStore, calculator *duration.Calculator, visitMetrics *metrics.VisitMetrics) *Interpreter {
	return &Interpreter{
		store:      store,
		calculator: calculator,
		metrics:    visitMetrics,
	}
}

// ResolveThreshold prefers a non-negative integer override embedded in the
// event and falls back to the stored setting.
func (i *Interpreter) ResolveThreshold(event domain.VisitEvent) (int, string) {
	if event.ThresholdOverride != "" {
		if minutes, err := strconv.Atoi(event.ThresholdOverride); err == nil && minutes >= 0 {
			return minutes, thresholdSourceEvent
		}
	}
	return i.store.Get().Minutes(), thresholdSourceStore
}

func (i *Interpreter) Interpret(ctx context.Context, event domain.VisitEvent) domain.Decision {
	ctx, span := tracing.StartInterpretSpan(ctx, event.Kind.String(), event.SchemaVersion)
	defer span.End()

	var decision domain.Decision
	switch event.Kind {
	case domain.EventKindSignIn:
		decision = domain.Decision{
			Outcome: domain.VisitOutcome{Kind: domain.OutcomeNoActionNeeded},
			Message: signedInMessage(event.FullName),
			Notify:  true,
		}
	case domain.EventKindSignOut:
		decision = i.interpretSignOut(ctx, event)
	default:
		decision = domain.Decision{
			Outcome: domain.VisitOutcome{Kind: domain.OutcomeNoActionNeeded},
			Message: NoActionNeededMessage,
		}
	}

	decision.EntryID = event.EntryID
	decision.EventKey = event.EventKey()

	tracing.RecordInterpretResult(span,
		decision.Outcome.Kind.String(),
		decision.Outcome.ElapsedMinutes,
		decision.Outcome.ThresholdMinutes,
		decision.Outcome.OverstayMinutes,
		decision.Outcome.Reason,
	)
	if i.metrics != nil {
		i.metrics.RecordEvent(ctx, event.Kind.String(), decision.Outcome.Kind.String())
	}

	slog.InfoContext(ctx, "visit event interpreted",
		slog.String("event", event.RawKind),
		slog.String("kind", event.Kind.String()),
		slog.String("entry_id", event.EntryID),
		slog.String("outcome", decision.Outcome.Kind.String()),
		slog.Bool("notify", decision.Notify),
	)

	return decision
}

func (i *Interpreter) interpretSignOut(ctx context.Context, event domain.VisitEvent) domain.Decision {
	threshold, source := i.ResolveThreshold(event)

	elapsed, err := i.calculator.ElapsedMinutes(event.SignedInAt, event.SignedOutAt)
	if err == nil && elapsed < 0 {
		err = fmt.Errorf("%w: signed-out-at precedes signed-in-at", domain.ErrMalformedTimestamp)
	}
	if err != nil {
		slog.WarnContext(ctx, "visit duration could not be computed",
			slog.String("entry_id", event.EntryID),
			slog.String("signed_in_at", event.SignedInAt),
			slog.String("signed_out_at", event.SignedOutAt),
			slog.String("error", err.Error()),
		)
		return domain.Decision{
			Outcome: domain.VisitOutcome{
				Kind:             domain.OutcomeError,
				ThresholdMinutes: threshold,
				Reason:           err.Error(),
			},
			Message: errorMessage(event.FullName, err),
			Notify:  true,
		}
	}

	slog.DebugContext(ctx, "visit duration computed",
		slog.String("entry_id", event.EntryID),
		slog.Int("elapsed_minutes", elapsed),
		slog.Int("threshold_minutes", threshold),
		slog.String("threshold_source", source),
	)

	if i.metrics != nil {
		i.metrics.RecordElapsedMinutes(ctx, elapsed)
	}

	if elapsed > threshold {
		by := elapsed - threshold
		return domain.Decision{
			Outcome: domain.VisitOutcome{
				Kind:             domain.OutcomeOverstayed,
				OverstayMinutes:  by,
				ElapsedMinutes:   elapsed,
				ThresholdMinutes: threshold,
			},
			Message: overstayedMessage(event.FullName, by),
			Notify:  true,
		}
	}

	return domain.Decision{
		Outcome: domain.VisitOutcome{
			Kind:             domain.OutcomeOnTime,
			ElapsedMinutes:   elapsed,
			ThresholdMinutes: threshold,
		},
		Message: onTimeMessage(event.FullName),
		Notify:  true,
	}
}
