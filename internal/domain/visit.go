package domain

// UnknownVisitor is used when the event carries no visitor name.
const UnknownVisitor = "N/A"

type EventKind string

const (
	EventKindSignIn  EventKind = "sign_in"
	EventKindSignOut EventKind = "sign_out"
	EventKindOther   EventKind = "other"
)

func (k EventKind) String() string {
	return string(k)
}

type VisitEvent struct {
	Kind EventKind
	// RawKind is the event name exactly as delivered by the origin system.
	RawKind  string
	FullName string
	EntryID  string

	SignedInAt  string
	SignedOutAt string

	// ThresholdOverride is the installer-configured value embedded in the
	// delivery, empty when the event source sent none.
	ThresholdOverride string

	SchemaVersion string
}

// EventKey identifies a single delivery target for idempotent dispatch.
func (e VisitEvent) EventKey() string {
	if e.EntryID == "" {
		return ""
	}
	return e.EntryID + ":" + e.Kind.String()
}
