package threshold

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

func newTestStore(t *testing.T, initial int) *Store {
	t.Helper()

	s, err := NewStore(domain.ThresholdSetting(initial))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestNewStoreRejectsOutOfRange(t *testing.T) {
	if _, err := NewStore(181); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSetThenGetWholeRange(t *testing.T) {
	s := newTestStore(t, 60)

	for v := domain.MinAllowedMinutes; v <= domain.MaxAllowedMinutes; v++ {
		got, err := s.Set(v)
		if err != nil {
			t.Fatalf("Set(%d): unexpected error: %v", v, err)
		}
		if got.Minutes() != v {
			t.Fatalf("Set(%d) returned %d", v, got)
		}
		if s.Get().Minutes() != v {
			t.Fatalf("Get after Set(%d) returned %d", v, s.Get())
		}
	}
}

func TestSetAcceptedInputs(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected int
	}{
		{name: "plain string", raw: "90", expected: 90},
		{name: "string with whitespace", raw: "  45\n", expected: 45},
		{name: "int", raw: 120, expected: 120},
		{name: "int64", raw: int64(30), expected: 30},
		{name: "integral float", raw: float64(15), expected: 15},
		{name: "json number", raw: json.Number("75"), expected: 75},
		{name: "raw json number", raw: json.RawMessage(`100`), expected: 100},
		{name: "raw json string", raw: json.RawMessage(`" 10 "`), expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, 180)

			got, err := s.Set(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Minutes() != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSetRejectedInputsLeaveStoreUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		wantErr error
	}{
		{name: "above range", raw: 181, wantErr: domain.ErrOutOfRange},
		{name: "negative", raw: "-5", wantErr: domain.ErrOutOfRange},
		{name: "huge", raw: "100000", wantErr: domain.ErrOutOfRange},
		{name: "overflows int", raw: "99999999999999999999", wantErr: domain.ErrOutOfRange},
		{name: "overflows int negative", raw: "-99999999999999999999", wantErr: domain.ErrOutOfRange},
		{name: "huge integral float", raw: 1e20, wantErr: domain.ErrOutOfRange},
		{name: "words", raw: "sixty", wantErr: domain.ErrNotANumber},
		{name: "empty string", raw: "", wantErr: domain.ErrNotANumber},
		{name: "fractional string", raw: "60.5", wantErr: domain.ErrNotANumber},
		{name: "fractional float", raw: 60.5, wantErr: domain.ErrNotANumber},
		{name: "nil", raw: nil, wantErr: domain.ErrNotANumber},
		{name: "bool", raw: true, wantErr: domain.ErrNotANumber},
		{name: "raw json object", raw: json.RawMessage(`{"value":1}`), wantErr: domain.ErrNotANumber},
		{name: "raw json null", raw: json.RawMessage(`null`), wantErr: domain.ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, 42)

			_, err := s.Set(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if s.Get() != 42 {
				t.Errorf("store mutated on failure: got %d, want 42", s.Get())
			}
		})
	}
}

func TestConcurrentSetAndGet(t *testing.T) {
	s := newTestStore(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			if _, err := s.Set(v); err != nil {
				t.Errorf("Set(%d): %v", v, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			if got := s.Get(); !got.InRange() {
				t.Errorf("observed out-of-range value %d", got)
			}
		}()
	}
	wg.Wait()
}
