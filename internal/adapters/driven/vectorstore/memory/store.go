// Package memory provides an in-memory vector store.
//
// It holds all chunks in a map guarded by a RWMutex and ranks queries
// with a brute-force cosine scan. Contents are lost on restart, which
// makes it useful for tests and throwaway local runs.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
)

var _ driven.VectorStore = (*Store)(nil)

// chunk is one stored entry.
type chunk struct {
	document  string
	metadata  map[string]any
	embedding []float32
}

// Store is an in-memory vector store keyed by chunk id.
type Store struct {
	mu     sync.RWMutex
	chunks map[string]chunk
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		chunks: make(map[string]chunk),
	}
}

// Upsert stores the batch. Existing ids are overwritten.
func (s *Store) Upsert(_ context.Context, batch driven.UpsertBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range batch.IDs {
		s.chunks[id] = chunk{
			document:  batch.Documents[i],
			metadata:  batch.Metadatas[i],
			embedding: batch.Embeddings[i],
		}
	}
	return nil
}

// Query returns up to topK stored chunks ranked by cosine similarity,
// best first.
func (s *Store) Query(_ context.Context, embedding []float32, topK int) ([]driven.Match, error) {
	if topK <= 0 {
		return []driven.Match{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		match driven.Match
		score float64
	}

	results := make([]scored, 0, len(s.chunks))
	for _, c := range s.chunks {
		results = append(results, scored{
			match: driven.Match{Content: c.document, Metadata: c.metadata},
			score: cosineSimilarity(embedding, c.embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if topK < len(results) {
		results = results[:topK]
	}

	matches := make([]driven.Match, len(results))
	for i, r := range results {
		matches[i] = r.match
	}
	return matches, nil
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
