package mcp

import (
	"context"

	"github.com/mosaic-search/mosaic/internal/core/domain"
)

// mockQuerier is a mock implementation of driving.Querier.
type mockQuerier struct {
	results []domain.QueryResult
	err     error

	lastQuery string
	lastTopK  int
}

func (m *mockQuerier) Query(_ context.Context, query string, topK int) ([]domain.QueryResult, error) {
	m.lastQuery = query
	m.lastTopK = topK
	return m.results, m.err
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	documentID string
	err        error

	lastFilename string
	lastData     []byte
}

func (m *mockIngestor) Ingest(_ context.Context, filename string, data []byte) (string, error) {
	m.lastFilename = filename
	m.lastData = data
	return m.documentID, m.err
}
