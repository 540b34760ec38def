package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
	"github.com/KasumiMercury/visit-overstay/internal/service/notify"
	"github.com/KasumiMercury/visit-overstay/internal/service/visit"
)

var errPayloadTooLarge = errors.New("payload too large")

// WebhookHandler acknowledges every delivery with 200 so the sender never
// retries an event.
type WebhookHandler struct {
	interpreter  *visit.Interpreter
	dispatcher   *notify.Dispatcher
	maxBodyBytes int64
}

func NewWebhookHandler(interpreter *visit.Interpreter, dispatcher *notify.Dispatcher, maxBodyBytes int64) *WebhookHandler {
	return &WebhookHandler{
		interpreter:  interpreter,
		dispatcher:   dispatcher,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxBodyBytes+1))
	if err != nil {
		slog.WarnContext(ctx, "failed to read webhook body", slog.String("error", err.Error()))
		respondMessage(c, visit.InvalidPayloadMessage(fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)))
		return
	}
	if int64(len(body)) > h.maxBodyBytes {
		slog.WarnContext(ctx, "webhook body exceeds limit", slog.Int64("limit_bytes", h.maxBodyBytes))
		respondMessage(c, visit.InvalidPayloadMessage(fmt.Errorf("%w: %w", domain.ErrInvalidPayload, errPayloadTooLarge)))
		return
	}

	event, err := visit.ParseEvent(body)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse webhook event", slog.String("error", err.Error()))
		respondMessage(c, visit.InvalidPayloadMessage(err))
		return
	}

	decision := h.interpreter.Interpret(ctx, event)

	if decision.Notify {
		result := h.dispatcher.Notify(ctx, notify.NotifyRequest{
			EntryID:  decision.EntryID,
			EventKey: decision.EventKey,
			Message:  decision.Message,
		})
		attrs := []any{
			slog.String("entry_id", result.EntryID),
			slog.String("event_key", result.EventKey),
			slog.String("status", result.Status.String()),
		}
		if result.Err != nil {
			attrs = append(attrs, slog.String("error", result.Err.Error()))
		}
		slog.DebugContext(ctx, "dispatch result", attrs...)
	}

	respondMessage(c, decision.Message)
}
