package services

import (
	"context"
	"fmt"

	"github.com/mosaic-search/mosaic/internal/core/domain"
	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
	"github.com/mosaic-search/mosaic/internal/core/ports/driving"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.Querier = (*QueryService)(nil)

// QueryService answers natural-language queries: embed the query with the
// same model used at indexing time, search the store, reconstruct results.
// It performs no re-ranking; results keep the store's similarity order.
type QueryService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewQueryService creates a new query service.
func NewQueryService(embedder driven.EmbeddingService, store driven.VectorStore) *QueryService {
	return &QueryService{
		embedder: embedder,
		store:    store,
	}
}

// Query returns up to topK reconstructed results, closest first.
//
// An empty query string is embedded and searched like any other; callers
// that want to reject it do so at the edge. A non-positive topK falls
// back to domain.DefaultTopK.
func (s *QueryService) Query(ctx context.Context, query string, topK int) ([]domain.QueryResult, error) {
	logger.Section("Query")
	logger.Debug("Query: %q, top_k=%d", query, topK)

	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryEmbedding, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	matches, err := s.store.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuerySearch, err)
	}
	logger.Debug("Store returned %d matches", len(matches))

	results := make([]domain.QueryResult, len(matches))
	for i, m := range matches {
		results[i] = domain.ReconstructResult(m.Content, m.Metadata)
	}

	logger.Info("Query answered with %d results", len(results))
	return results, nil
}
