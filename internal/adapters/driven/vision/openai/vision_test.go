package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

func testRequest() driven.VisionRequest {
	return driven.VisionRequest{
		Instruction: "compose a query",
		Image:       domain.NewImage("/tmp/chart.png", []byte("png-bytes")),
		MaxTokens:   64,
	}
}

func TestNewVisionService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewVisionService(Config{})
		assert.ErrorIs(t, err, domain.ErrMissingCredential)
	})

	t.Run("applies defaults", func(t *testing.T) {
		svc, err := NewVisionService(Config{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, svc.baseURL)
		assert.Equal(t, "gpt-4o", svc.ModelName())
		assert.Equal(t, DefaultTimeout, svc.client.Timeout)
		assert.NoError(t, svc.Close())
	})

	t.Run("keeps overrides", func(t *testing.T) {
		svc, err := NewVisionService(Config{
			APIKey:  "sk-test",
			BaseURL: "http://proxy.local/v1/",
			Model:   "gpt-4o-mini",
			Timeout: time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://proxy.local/v1", svc.baseURL)
		assert.Equal(t, "gpt-4o-mini", svc.ModelName())
	})
}

func TestVisionService_Describe(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"TSMC AND capex"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	svc, err := NewVisionService(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	reply, err := svc.Describe(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "TSMC AND capex", reply)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 64, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "text", got.Messages[0].Content[0].Type)
	assert.Equal(t, "compose a query", got.Messages[0].Content[0].Text)
	assert.Equal(t, "image_url", got.Messages[0].Content[1].Type)
	require.NotNil(t, got.Messages[0].Content[1].ImageURL)
	assert.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", got.Messages[0].Content[1].ImageURL.URL)
}

func TestVisionService_Describe_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "api error object",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			want:   "Incorrect API key provided",
		},
		{
			name:   "non-json error",
			status: http.StatusBadGateway,
			body:   `upstream unavailable`,
			want:   "status 502",
		},
		{
			name:   "malformed success body",
			status: http.StatusOK,
			body:   `{"choices":`,
			want:   "decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc, err := NewVisionService(Config{APIKey: "sk-test", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = svc.Describe(context.Background(), testRequest())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVisionService_Describe_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc, err := NewVisionService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	reply, err := svc.Describe(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestVisionService_Describe_SingleAttempt(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	svc, err := NewVisionService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Describe(context.Background(), testRequest())

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestVisionService_Describe_Unreachable(t *testing.T) {
	svc, err := NewVisionService(Config{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = svc.Describe(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}
