package services

import (
	"context"
	"sync"

	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
)

// mockParser is a mock implementation of driven.Parser.
type mockParser struct {
	result *driven.ParseResult
	err    error

	lastPath string
}

func (m *mockParser) Parse(_ context.Context, path string) (*driven.ParseResult, error) {
	m.lastPath = path
	return m.result, m.err
}

func (m *mockParser) Ping(_ context.Context) error { return nil }
func (m *mockParser) Close() error                 { return nil }

// mockSummariser is a mock implementation of driven.Summariser.
// Summaries are derived from the input so tests can check alignment.
type mockSummariser struct {
	textErr  error
	tableErr error
	imageErr error

	mu         sync.Mutex
	textCalls  int
	tableCalls int
	imageCalls int
}

func (m *mockSummariser) SummariseText(_ context.Context, content string) (string, error) {
	m.mu.Lock()
	m.textCalls++
	m.mu.Unlock()
	if m.textErr != nil {
		return "", m.textErr
	}
	return "text summary of " + content, nil
}

func (m *mockSummariser) SummariseTable(_ context.Context, content string) (string, error) {
	m.mu.Lock()
	m.tableCalls++
	m.mu.Unlock()
	if m.tableErr != nil {
		return "", m.tableErr
	}
	return "table summary of " + content, nil
}

func (m *mockSummariser) SummariseImage(_ context.Context, _ map[string]any) (string, error) {
	m.mu.Lock()
	m.imageCalls++
	m.mu.Unlock()
	if m.imageErr != nil {
		return "", m.imageErr
	}
	return "image summary", nil
}

func (m *mockSummariser) ModelName() string            { return "mock-summariser" }
func (m *mockSummariser) Ping(_ context.Context) error { return nil }
func (m *mockSummariser) Close() error                 { return nil }

// mockEmbedder is a mock implementation of driven.EmbeddingService.
// The embedding encodes the input length so alignment is observable.
type mockEmbedder struct {
	err error

	mu    sync.Mutex
	calls []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockStore is a mock implementation of driven.VectorStore.
type mockStore struct {
	upsertErr error
	queryErr  error
	matches   []driven.Match

	mu      sync.Mutex
	batches []driven.UpsertBatch

	lastQueryEmbedding []float32
	lastTopK           int
}

func (m *mockStore) Upsert(_ context.Context, batch driven.UpsertBatch) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	m.batches = append(m.batches, batch)
	m.mu.Unlock()
	return nil
}

func (m *mockStore) Query(_ context.Context, embedding []float32, topK int) ([]driven.Match, error) {
	m.lastQueryEmbedding = embedding
	m.lastTopK = topK
	return m.matches, m.queryErr
}

func (m *mockStore) Ping(_ context.Context) error { return nil }
func (m *mockStore) Close() error                 { return nil }
