package envoy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://envoy.test/v1"

func newMockedClient(t *testing.T) *Client {
	t.Helper()

	client := NewClient(testBaseURL+"/", "secret-key", 5*time.Second)
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	return client
}

func TestAddPrivateNoteSendsExpectedRequest(t *testing.T) {
	client := newMockedClient(t)

	var captured *http.Request
	var payload map[string]any
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/entries/e-123/notes",
		func(req *http.Request) (*http.Response, error) {
			captured = req
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusCreated, `{"data":{}}`), nil
		})

	err := client.AddPrivateNote(context.Background(), "e-123", "Jane Doe overstayed by 10 minutes.")
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, "secret-key", captured.Header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
	assert.NotEmpty(t, captured.Header.Get("x-request-id"))
	assert.Equal(t, "Jane Doe overstayed by 10 minutes.", payload["body"])
	assert.Equal(t, true, payload["private"])
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestAddPrivateNoteStatusHandling(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "200 ok", status: http.StatusOK},
		{name: "204 no content", status: http.StatusNoContent},
		{name: "401 unauthorized", status: http.StatusUnauthorized, wantErr: true},
		{name: "404 not found", status: http.StatusNotFound, wantErr: true},
		{name: "500 server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockedClient(t)
			httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/entries/e-1/notes",
				httpmock.NewStringResponder(tt.status, `{}`))

			err := client.AddPrivateNote(context.Background(), "e-1", "Jane signed in")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnexpectedStatus)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAddPrivateNoteTransportError(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/entries/e-1/notes",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	err := client.AddPrivateNote(context.Background(), "e-1", "Jane signed in")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}

func TestAddPrivateNoteRequiresEntryID(t *testing.T) {
	client := newMockedClient(t)

	err := client.AddPrivateNote(context.Background(), "", "Jane signed in")
	assert.ErrorIs(t, err, ErrMissingEntryID)
	assert.Zero(t, httpmock.GetTotalCallCount())
}
