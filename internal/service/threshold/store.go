package threshold

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

// Store holds the process-wide allowed-duration setting.
type Store struct {
	value atomic.Int64
}

var _ domain.ThresholdStore = (*Store)(nil)

func NewStore(initial domain.ThresholdSetting) (*Store, error) {
	if !initial.InRange() {
		return nil, fmt.Errorf("initial threshold %d: %w", initial, domain.ErrOutOfRange)
	}

	s := &Store{}
	s.value.Store(int64(initial))
	return s, nil
}

func (s *Store) Get() domain.ThresholdSetting {
	return domain.ThresholdSetting(s.value.Load())
}

// Set coerces raw into whole minutes and replaces the stored value.
// The store is left untouched on any error.
func (s *Store) Set(raw any) (domain.ThresholdSetting, error) {
	minutes, err := ParseMinutes(raw)
	if err != nil {
		return s.Get(), err
	}

	setting := domain.ThresholdSetting(minutes)
	if !setting.InRange() {
		return s.Get(), domain.ErrOutOfRange
	}

	s.value.Store(int64(setting))
	return setting, nil
}

// ParseMinutes coerces a raw settings value into an integer.
func ParseMinutes(raw any) (int, error) {
	switch v := raw.(type) {
	case string:
		return parseMinutesString(v)
	case json.Number:
		return parseMinutesString(v.String())
	case json.RawMessage:
		return parseMinutesJSON(v)
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, domain.ErrNotANumber
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, domain.ErrOutOfRange
		}
		return int(v), nil
	default:
		return 0, domain.ErrNotANumber
	}
}

func parseMinutesJSON(raw json.RawMessage) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return 0, domain.ErrNotANumber
		}
		return parseMinutesString(s)
	}
	return parseMinutesString(trimmed)
}

func parseMinutesString(s string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) {
		return 0, domain.ErrOutOfRange
	}
	if err != nil {
		return 0, domain.ErrNotANumber
	}
	return minutes, nil
}
