package envoy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KasumiMercury/visit-overstay/internal/observability/logging"
	"github.com/KasumiMercury/visit-overstay/internal/observability/tracing"
)

const (
	apiKeyHeader     = "X-Api-Key"
	maxErrorBodySize = 4 << 10
)

type noteRequest struct {
	Body    string `json:"body"`
	Private bool   `json:"private"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ NoteRepository = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// AddPrivateNote attaches message to the entry as a private note. Any 2xx
// response counts as delivered.
func (c *Client) AddPrivateNote(ctx context.Context, entryID, message string) error {
	if entryID == "" {
		return ErrMissingEntryID
	}

	endpoint := c.baseURL + "/entries/" + url.PathEscape(entryID) + "/notes"

	ctx, span := tracing.StartExternalAPISpan(ctx, "add_private_note", endpoint)
	defer span.End()

	body, err := json.Marshal(noteRequest{Body: message, Private: true})
	if err != nil {
		tracing.RecordExternalAPIResult(span, 0, err)
		return fmt.Errorf("failed to marshal note body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		tracing.RecordExternalAPIResult(span, 0, err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set(logging.RequestIDHeader, requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	slog.DebugContext(ctx, "posting private note",
		slog.String("entry_id", entryID),
		slog.String("url", endpoint),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send note to envoy",
			slog.String("entry_id", entryID),
			slog.String("url", endpoint),
			slog.String("error", err.Error()),
		)
		tracing.RecordExternalAPIResult(span, 0, err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		slog.ErrorContext(ctx, "unexpected status code from envoy",
			slog.String("entry_id", entryID),
			slog.Int("status_code", resp.StatusCode),
			slog.String("response", string(snippet)),
		)
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		tracing.RecordExternalAPIResult(span, resp.StatusCode, err)
		return err
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	tracing.RecordExternalAPIResult(span, resp.StatusCode, nil)

	slog.DebugContext(ctx, "private note delivered",
		slog.String("entry_id", entryID),
		slog.Int("status_code", resp.StatusCode),
	)

	return nil
}
