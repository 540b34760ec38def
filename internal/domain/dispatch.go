package domain

import "context"

type DispatchStatus string

const (
	DispatchSkipped   DispatchStatus = "skipped"
	DispatchQueued    DispatchStatus = "queued"
	DispatchDelivered DispatchStatus = "delivered"
	DispatchDuplicate DispatchStatus = "duplicate"
	DispatchFailed    DispatchStatus = "failed"
)

func (s DispatchStatus) String() string {
	return string(s)
}

// DispatchResult is used for diagnostics only and never drives a retry.
type DispatchResult struct {
	EntryID  string
	EventKey string
	Status   DispatchStatus
	Err      error
}

//go:generate mockgen -source=dispatch.go -destination=dispatch_mock.go -package=domain

// DispatchLedger records which events already had a note dispatched.
type DispatchLedger interface {
	// MarkDispatched returns false when the key was already marked.
	MarkDispatched(ctx context.Context, eventKey string) (bool, error)
	Close() error
}
