package driving

import (
	"context"

	"github.com/mosaic-search/mosaic/internal/core/domain"
)

// Querier answers natural-language queries with ranked chunk results.
type Querier interface {
	// Query embeds the query text, searches the vector store and returns
	// up to topK reconstructed results in similarity order, closest
	// first. A non-positive topK falls back to domain.DefaultTopK.
	Query(ctx context.Context, query string, topK int) ([]domain.QueryResult, error)
}
