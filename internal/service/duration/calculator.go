package duration

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

// layouts are tried in order after the zone suffix has been normalised.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// ElapsedMinutes returns end-start in whole minutes, truncated toward zero.
// A negative result is returned as is.
func (c *Calculator) ElapsedMinutes(start, end string) (int, error) {
	startTime, err := ParseTimestamp(start)
	if err != nil {
		return 0, fmt.Errorf("signed-in-at: %w", err)
	}

	endTime, err := ParseTimestamp(end)
	if err != nil {
		return 0, fmt.Errorf("signed-out-at: %w", err)
	}

	return int(endTime.Sub(startTime) / time.Minute), nil
}

// ParseTimestamp parses an ISO-8601-like timestamp carrying a numeric offset,
// a trailing "Z", a trailing " UTC", or no zone at all (read as UTC).
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, domain.ErrMissingTimestamp
	}

	normalized := normalizeZone(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrMalformedTimestamp, raw)
}

func normalizeZone(value string) string {
	switch {
	case strings.HasSuffix(value, " UTC"):
		return strings.TrimSuffix(value, " UTC") + "+00:00"
	case strings.HasSuffix(value, "Z"), strings.HasSuffix(value, "z"):
		return value[:len(value)-1] + "+00:00"
	default:
		return value
	}
}
