package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
	"github.com/KasumiMercury/visit-overstay/internal/observability/metrics"
)

const (
	allowedMinutesLabel    = "Allowed visit duration (minutes)"
	allowedMinutesHelpText = "Visitors who stay longer than this many minutes are reported as overstayed."
)

type FieldView struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Value    int    `json:"value"`
	HelpText string `json:"help_text"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
}

// View is the read shape of the settings resource.
type View struct {
	AllowedMinutes FieldView `json:"allowed_minutes"`
}

type Service struct {
	store   domain.ThresholdStore
	metrics *metrics.VisitMetrics
}

func NewService(store domain.ThresholdStore, visitMetrics *metrics.VisitMetrics) *Service {
	return &Service{
		store:   store,
		metrics: visitMetrics,
	}
}

func (s *Service) Current() View {
	return View{
		AllowedMinutes: FieldView{
			Type:     "number",
			Label:    allowedMinutesLabel,
			Value:    s.store.Get().Minutes(),
			HelpText: allowedMinutesHelpText,
			Min:      domain.MinAllowedMinutes,
			Max:      domain.MaxAllowedMinutes,
		},
	}
}

// Update applies the allowed-minutes value carried by body. Nothing is
// changed unless the value is a whole number within range.
func (s *Service) Update(ctx context.Context, body []byte) (domain.ThresholdSetting, error) {
	candidate, err := extractCandidate(body)
	if err != nil {
		s.recordUpdate(ctx, err)
		return s.store.Get(), err
	}

	previous := s.store.Get()
	applied, err := s.store.Set(candidate)
	s.recordUpdate(ctx, err)
	if err != nil {
		slog.InfoContext(ctx, "settings update rejected",
			slog.String("error", err.Error()),
		)
		return applied, err
	}

	slog.InfoContext(ctx, "allowed minutes updated",
		slog.Int("previous", previous.Minutes()),
		slog.Int("current", applied.Minutes()),
	)

	return applied, nil
}

func (s *Service) recordUpdate(ctx context.Context, err error) {
	if s.metrics == nil {
		return
	}

	result := "applied"
	switch {
	case errors.Is(err, domain.ErrNotANumber):
		result = "not_a_number"
	case errors.Is(err, domain.ErrOutOfRange):
		result = "out_of_range"
	case err != nil:
		result = "error"
	}
	s.metrics.RecordSettingsUpdate(ctx, result)
}

// extractCandidate looks for the value at payload.allowed_minutes, then
// allowed_minutes.value, then a bare allowed_minutes.
func extractCandidate(body []byte) (json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, domain.ErrNotANumber
	}

	if payload, ok := root["payload"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(payload, &inner); err == nil {
			if raw, ok := inner["allowed_minutes"]; ok {
				return unwrapValue(raw), nil
			}
		}
	}

	if raw, ok := root["allowed_minutes"]; ok {
		return unwrapValue(raw), nil
	}

	return nil, domain.ErrNotANumber
}

func unwrapValue(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return trimmed
	}
	if value, ok := wrapper["value"]; ok {
		return value
	}
	return trimmed
}
