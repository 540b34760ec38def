package envoy

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status from envoy api")
	ErrMissingEntryID   = errors.New("entry id is required")
)
