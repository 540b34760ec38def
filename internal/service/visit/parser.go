package visit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

type rawEvent struct {
	Meta struct {
		Event  string                     `json:"event"`
		Config map[string]json.RawMessage `json:"config"`
	} `json:"meta"`
}

type rawEntry struct {
	ID         json.RawMessage            `json:"id"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// ParseEvent normalises any accepted webhook layout into a VisitEvent.
func ParseEvent(body []byte) (domain.VisitEvent, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return domain.VisitEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if top == nil {
		return domain.VisitEvent{}, fmt.Errorf("%w: body is not a JSON object", domain.ErrInvalidPayload)
	}

	var raw rawEvent
	if meta, ok := top["meta"]; ok && !isNull(meta) {
		if err := json.Unmarshal(meta, &raw.Meta); err != nil {
			return domain.VisitEvent{}, fmt.Errorf("%w: meta: %v", domain.ErrInvalidPayload, err)
		}
	}

	event := domain.VisitEvent{
		RawKind:  raw.Meta.Event,
		Kind:     ClassifyEvent(raw.Meta.Event),
		FullName: domain.UnknownVisitor,
	}
	event.ThresholdOverride = thresholdOverride(raw.Meta.Config)

	entry, version, err := locateEntry(top)
	if err != nil {
		return domain.VisitEvent{}, err
	}
	event.SchemaVersion = version

	event.EntryID = scalarString(entry.ID)
	if name := lookupString(entry.Attributes, fullNameKeys); name != "" {
		event.FullName = name
	}
	event.SignedInAt = lookupString(entry.Attributes, signedInAtKeys)
	event.SignedOutAt = lookupString(entry.Attributes, signedOutAtKeys)

	return event, nil
}

func locateEntry(top map[string]json.RawMessage) (rawEntry, string, error) {
	for _, variant := range schemaVariants {
		container, ok := top[variant.EntryContainer]
		if !ok || isNull(container) {
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(container, &entry); err != nil {
			return rawEntry{}, "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidPayload, variant.EntryContainer, err)
		}
		return entry, variant.Version, nil
	}

	return rawEntry{}, schemaVariants[0].Version, nil
}

// thresholdOverride accepts {"value": "60"}, "60" or 60 under any alias key.
func thresholdOverride(cfg map[string]json.RawMessage) string {
	for _, key := range thresholdConfigKeys {
		raw, ok := cfg[key]
		if !ok || isNull(raw) {
			continue
		}

		var wrapped struct {
			Value json.RawMessage `json:"value"`
		}
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			if err := json.Unmarshal(raw, &wrapped); err != nil {
				return ""
			}
			return scalarString(wrapped.Value)
		}
		return scalarString(raw)
	}
	return ""
}

func lookupString(attrs map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		if raw, ok := attrs[key]; ok {
			if s := scalarString(raw); s != "" {
				return s
			}
		}
	}
	return ""
}

// scalarString renders a JSON string or number as text. Anything else is empty.
func scalarString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isNull(trimmed) {
		return ""
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return ""
	}
	return n.String()
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
