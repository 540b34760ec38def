package repository

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrEmptyEventKey   = errors.New("event key is required")
)
