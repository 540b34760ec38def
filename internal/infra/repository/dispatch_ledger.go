package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

const dispatchedKeyPrefix = "overstay:dispatched:"

type RedisDispatchLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDispatchLedger marks event keys with SET NX so that concurrent
// instances agree on a single dispatch per key.
func NewRedisDispatchLedger(client *redis.Client, ttl time.Duration) *RedisDispatchLedger {
	return &RedisDispatchLedger{
		client: client,
		ttl:    ttl,
	}
}

var _ domain.DispatchLedger = (*RedisDispatchLedger)(nil)

func (l *RedisDispatchLedger) MarkDispatched(ctx context.Context, eventKey string) (bool, error) {
	if eventKey == "" {
		return false, ErrEmptyEventKey
	}

	marked, err := l.client.SetNX(ctx, dispatchedKeyPrefix+eventKey, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	return marked, nil
}

func (l *RedisDispatchLedger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisDispatchLedger) Close() error {
	return l.client.Close()
}
