package visit

import (
	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

// schemaVariant describes one accepted webhook layout. Variants are matched in
// order; the first whose entry container is present wins.
type schemaVariant struct {
	Version        string
	EntryContainer string
}

var schemaVariants = []schemaVariant{
	{Version: "envoy-v1", EntryContainer: "payload"},
	{Version: "envoy-data", EntryContainer: "data"},
}

// Attribute aliases in lookup order: kebab (current), snake, camel.
var (
	fullNameKeys    = []string{"full-name", "full_name", "fullName"}
	signedInAtKeys  = []string{"signed-in-at", "signed_in_at", "signedInAt"}
	signedOutAtKeys = []string{"signed-out-at", "signed_out_at", "signedOutAt"}
)

var thresholdConfigKeys = []string{"allowed_minutes", "allowed-minutes", "allowedMinutes"}

var eventKinds = map[string]domain.EventKind{
	"entry_sign_in":    domain.EventKindSignIn,
	"entry_signed_in":  domain.EventKindSignIn,
	"sign_in":          domain.EventKindSignIn,
	"entry_sign_out":   domain.EventKindSignOut,
	"entry_signed_out": domain.EventKindSignOut,
	"sign_out":         domain.EventKindSignOut,
}

// ClassifyEvent maps an origin event name onto an EventKind.
func ClassifyEvent(name string) domain.EventKind {
	if kind, ok := eventKinds[name]; ok {
		return kind
	}
	return domain.EventKindOther
}
