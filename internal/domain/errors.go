package domain

import "errors"

var (
	ErrNotANumber         = errors.New("value must be a number")
	ErrOutOfRange         = errors.New("allowed minutes must be between 0 and 180 minutes")
	ErrMissingTimestamp   = errors.New("missing timestamp")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrInvalidPayload     = errors.New("invalid webhook payload")
	ErrDispatchFailed     = errors.New("note dispatch failed")
)
