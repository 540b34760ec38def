package duration

import (
	"errors"
	"testing"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
)

func TestElapsedMinutes(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{
			name:     "zulu suffix",
			start:    "2024-01-01T09:00:00Z",
			end:      "2024-01-01T10:15:00Z",
			expected: 75,
		},
		{
			name:     "utc suffix",
			start:    "2024-01-01T09:00:00 UTC",
			end:      "2024-01-01T10:15:00 UTC",
			expected: 75,
		},
		{
			name:     "mixed suffixes",
			start:    "2024-01-01T09:00:00Z",
			end:      "2024-01-01 10:15:00 UTC",
			expected: 75,
		},
		{
			name:     "numeric offsets",
			start:    "2024-01-01T10:00:00+01:00",
			end:      "2024-01-01T09:30:00Z",
			expected: 30,
		},
		{
			name:     "fractional seconds truncate",
			start:    "2024-01-01T09:00:00.000Z",
			end:      "2024-01-01T09:29:59.999Z",
			expected: 29,
		},
		{
			name:     "no zone reads as utc",
			start:    "2024-01-01T09:00:00",
			end:      "2024-01-01T09:45:00Z",
			expected: 45,
		},
		{
			name:     "end before start is negative",
			start:    "2024-01-01T10:00:00Z",
			end:      "2024-01-01T09:00:30Z",
			expected: -59,
		},
		{
			name:     "same instant",
			start:    "2024-01-01T09:00:00Z",
			end:      "2024-01-01T09:00:00Z",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ElapsedMinutes(tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestElapsedMinutesZoneSuffixInvariance(t *testing.T) {
	calc := NewCalculator()

	wallClocks := [][2]string{
		{"2024-03-10T08:00:00", "2024-03-10T08:59:00"},
		{"2024-03-10T23:30:00", "2024-03-11T01:00:00"},
		{"2024-02-28T12:00:00", "2024-03-01T12:00:00"},
	}

	for _, wc := range wallClocks {
		zulu, err := calc.ElapsedMinutes(wc[0]+"Z", wc[1]+"Z")
		if err != nil {
			t.Fatalf("zulu: unexpected error: %v", err)
		}
		utc, err := calc.ElapsedMinutes(wc[0]+" UTC", wc[1]+" UTC")
		if err != nil {
			t.Fatalf("utc: unexpected error: %v", err)
		}
		if zulu != utc {
			t.Errorf("%v: zulu=%d utc=%d", wc, zulu, utc)
		}
	}
}

func TestElapsedMinutesErrors(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "missing start", start: "", end: "2024-01-01T09:00:00Z", wantErr: domain.ErrMissingTimestamp},
		{name: "missing end", start: "2024-01-01T09:00:00Z", end: "", wantErr: domain.ErrMissingTimestamp},
		{name: "blank end", start: "2024-01-01T09:00:00Z", end: "   ", wantErr: domain.ErrMissingTimestamp},
		{name: "malformed start", start: "yesterday", end: "2024-01-01T09:00:00Z", wantErr: domain.ErrMalformedTimestamp},
		{name: "malformed end", start: "2024-01-01T09:00:00Z", end: "2024-13-01T09:00:00Z", wantErr: domain.ErrMalformedTimestamp},
		{name: "unknown zone name", start: "2024-01-01T09:00:00 PST", end: "2024-01-01T09:00:00Z", wantErr: domain.ErrMalformedTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.ElapsedMinutes(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
