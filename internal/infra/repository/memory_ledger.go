package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

// sweepEvery is how many marks pass between expired-key sweeps.
const sweepEvery = 1024

// MemoryDispatchLedger keeps marks for a single process. The cache runs no
// janitor goroutine; Add ignores expired keys and sweeps happen inline.
type MemoryDispatchLedger struct {
	cache *cache.Cache
	marks atomic.Uint64
}

func NewMemoryDispatchLedger(ttl time.Duration) *MemoryDispatchLedger {
	return &MemoryDispatchLedger{
		cache: cache.New(ttl, 0),
	}
}

var _ domain.DispatchLedger = (*MemoryDispatchLedger)(nil)

func (l *MemoryDispatchLedger) MarkDispatched(_ context.Context, eventKey string) (bool, error) {
	if eventKey == "" {
		return false, ErrEmptyEventKey
	}

	if l.marks.Add(1)%sweepEvery == 0 {
		l.cache.DeleteExpired()
	}

	// Add fails when the key is present and unexpired.
	if err := l.cache.Add(eventKey, time.Now().UTC(), cache.DefaultExpiration); err != nil {
		return false, nil
	}

	return true, nil
}

// Len reports the number of stored keys, expired or not.
func (l *MemoryDispatchLedger) Len() int {
	return l.cache.ItemCount()
}

func (l *MemoryDispatchLedger) Ping(context.Context) error {
	return nil
}

func (l *MemoryDispatchLedger) Close() error {
	l.cache.Flush()
	return nil
}
