package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantStatus Status
	}{
		{
			name:       "no dependencies",
			deps:       nil,
			wantStatus: StatusHealthy,
		},
		{
			name:       "healthy ledger",
			deps:       map[string]Pinger{"dispatch_ledger": stubPinger{}},
			wantStatus: StatusHealthy,
		},
		{
			name: "one failing dependency",
			deps: map[string]Pinger{
				"dispatch_ledger": stubPinger{err: errors.New("connection refused")},
				"other":           stubPinger{},
			},
			wantStatus: StatusUnhealthy,
		},
		{
			name:       "nil dependency is ignored",
			deps:       map[string]Pinger{"dispatch_ledger": nil},
			wantStatus: StatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewChecker("test", tt.deps).Check(context.Background())
			if status.Status != tt.wantStatus {
				t.Errorf("status: got %s, want %s", status.Status, tt.wantStatus)
			}
		})
	}
}

func TestReadyHandlerUnhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	checker := NewChecker("test", map[string]Pinger{
		"dispatch_ledger": stubPinger{err: errors.New("down")},
	})
	r := gin.New()
	r.GET("/health/ready", checker.ReadyHandler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status code: got %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var body HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Checks["dispatch_ledger"].Error != "down" {
		t.Errorf("unexpected check result: %+v", body.Checks["dispatch_ledger"])
	}
}
