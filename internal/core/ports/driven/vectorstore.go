package driven

import (
	"context"
	"fmt"
)

// VectorStore persists embedded chunks and answers nearest-neighbour
// queries. Writes use upsert semantics keyed by chunk id: an existing id
// is overwritten, which the identifier scheme is designed to never hit.
//
// Implementations may include:
//   - Chroma (REST)
//   - SQLite (local brute-force cosine scan)
//   - in-memory (tests)
type VectorStore interface {
	// Upsert writes one document's chunks as a single batch. The batch is
	// atomic by convention: callers treat any error as "nothing indexed",
	// though the underlying store is not assumed to be transactional.
	Upsert(ctx context.Context, batch UpsertBatch) error

	// Query returns up to topK (content, metadata) pairs ordered by
	// similarity to the given embedding, closest first. A non-positive
	// topK yields no matches; defaulting it is the caller's job.
	Query(ctx context.Context, embedding []float32, topK int) ([]Match, error)

	// Ping validates the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// UpsertBatch carries one document's store-ready chunks as four parallel,
// index-aligned sequences.
type UpsertBatch struct {
	// IDs are the chunk identifiers ("{document_id}_{chunk_index}").
	IDs []string

	// Embeddings are the chunk vectors, all of one dimensionality.
	Embeddings [][]float32

	// Metadatas are the flattened metadata maps. Values are primitive
	// only; the store never receives a nested value.
	Metadatas []map[string]any

	// Documents are the summarised chunk texts stored for display.
	Documents []string
}

// Len returns the number of chunks in the batch.
func (b UpsertBatch) Len() int { return len(b.IDs) }

// Validate checks that the four sequences are index-aligned.
func (b UpsertBatch) Validate() error {
	n := len(b.IDs)
	if len(b.Embeddings) != n || len(b.Metadatas) != n || len(b.Documents) != n {
		return fmt.Errorf("misaligned batch: ids=%d embeddings=%d metadatas=%d documents=%d",
			n, len(b.Embeddings), len(b.Metadatas), len(b.Documents))
	}
	return nil
}

// Match is one retrieved (content, metadata) pair.
type Match struct {
	Content  string
	Metadata map[string]any
}
