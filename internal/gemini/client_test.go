package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger, _ := test.NewNullLogger()
	return NewClient(Config{APIKey: "secret", BaseURL: srv.URL + "/"}, logger)
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"**Warm-Up**\n"},{"text":"- SSH x20 IC\n"}]}}]}`))
	})

	text, err := client.Generate(context.Background(), []workout.FocusType{workout.FocusHIIT})
	require.NoError(t, err)

	assert.Equal(t, "**Warm-Up**\n- SSH x20 IC", text)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "High-Intensity Interval Training (HIIT)")
}

func TestGenerate_MissingKey(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := NewClient(Config{}, logger)

	_, err := client.Generate(context.Background(), []workout.FocusType{workout.FocusCardio})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, FailureMessage, UserMessage(err))
	assert.Equal(t, DefaultModel, client.Model())
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`},
		{"bad status no body", http.StatusInternalServerError, `oops`},
		{"malformed", http.StatusOK, `{"candidates":`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"empty text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			text, err := client.Generate(context.Background(), []workout.FocusType{workout.FocusMixed})
			assert.Empty(t, text)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Equal(t, FailureMessage, UserMessage(err))
		})
	}
}

func TestGenerate_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, []workout.FocusType{workout.FocusBodyweight})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.False(t, errors.Is(err, ErrMissingAPIKey))
}

func TestUserMessage_Nil(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
}
