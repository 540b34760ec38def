package domain

type OutcomeKind string

const (
	OutcomeNoActionNeeded OutcomeKind = "no_action_needed"
	OutcomeOnTime         OutcomeKind = "on_time"
	OutcomeOverstayed     OutcomeKind = "overstayed"
	OutcomeError          OutcomeKind = "error"
)

func (k OutcomeKind) String() string {
	return string(k)
}

type VisitOutcome struct {
	Kind             OutcomeKind
	OverstayMinutes  int
	ElapsedMinutes   int
	ThresholdMinutes int
	Reason           string
}

// Decision is the interpreted result of one webhook event.
type Decision struct {
	Outcome VisitOutcome
	Message string
	EntryID string
	// EventKey is the idempotency key used by the dispatcher.
	EventKey string
	Notify   bool
}
