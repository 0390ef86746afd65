package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGeminiServer answers every generateContent call with the given text.
func newGeminiServer(t *testing.T, answer string) (*httptest.Server, *generateRequest) {
	t.Helper()

	var lastReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastReq))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": answer}}}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &lastReq
}

func newTestSummariser(t *testing.T, baseURL string) *Summariser {
	t.Helper()
	s, err := NewSummariser(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		// High limit so tests don't wait on the throttle.
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return s
}

func TestNewSummariser(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewSummariser(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})

	t.Run("defaults applied", func(t *testing.T) {
		s, err := NewSummariser(Config{APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, s.ModelName())
	})
}

func TestSummariser_SummariseText(t *testing.T) {
	srv, lastReq := newGeminiServer(t, "  a concise summary \n")
	s := newTestSummariser(t, srv.URL)

	summary, err := s.SummariseText(context.Background(), "long technical passage")
	require.NoError(t, err)
	assert.Equal(t, "a concise summary", summary, "response text is trimmed")

	require.Len(t, lastReq.Contents, 1)
	prompt := lastReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "long technical passage")
	assert.Contains(t, prompt, "Summarize the following technical text")

	require.NotNil(t, lastReq.SystemInstruction)
	require.NotNil(t, lastReq.GenerationConfig)
	assert.Equal(t, DefaultTemperature, lastReq.GenerationConfig.Temperature)
	assert.Equal(t, DefaultMaxTokens, lastReq.GenerationConfig.MaxOutputTokens)
}

func TestSummariser_SummariseTable(t *testing.T) {
	srv, lastReq := newGeminiServer(t, "table summary")
	s := newTestSummariser(t, srv.URL)

	_, err := s.SummariseTable(context.Background(), "| col |")
	require.NoError(t, err)

	prompt := lastReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "| col |")
	assert.Contains(t, prompt, "tabular data")
}

func TestSummariser_SummariseImage(t *testing.T) {
	t.Run("metadata rendered in stable order", func(t *testing.T) {
		srv, lastReq := newGeminiServer(t, "image summary")
		s := newTestSummariser(t, srv.URL)

		_, err := s.SummariseImage(context.Background(), map[string]any{
			"page_no": 2,
			"caption": "figure 1",
		})
		require.NoError(t, err)

		prompt := lastReq.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "caption: figure 1")
		assert.Contains(t, prompt, "page_no: 2")
		// Keys are sorted, so caption precedes page_no.
		assert.Less(t, strings.Index(prompt, "caption"), strings.Index(prompt, "page_no"))
	})

	t.Run("empty metadata", func(t *testing.T) {
		srv, lastReq := newGeminiServer(t, "image summary")
		s := newTestSummariser(t, srv.URL)

		_, err := s.SummariseImage(context.Background(), nil)
		require.NoError(t, err)
		assert.Contains(t, lastReq.Contents[0].Parts[0].Text, "No metadata provided.")
	})
}

func TestSummariser_Errors(t *testing.T) {
	t.Run("API error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		s := newTestSummariser(t, srv.URL)
		_, err := s.SummariseText(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("empty candidate list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		}))
		defer srv.Close()

		s := newTestSummariser(t, srv.URL)
		_, err := s.SummariseText(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty response")
	})
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "No metadata provided.", formatMetadata(nil))
	assert.Equal(t, "a: 1\nb: two", formatMetadata(map[string]any{"b": "two", "a": 1}))
}
