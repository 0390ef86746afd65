package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mosaic-search/mosaic/internal/core/domain"
	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
)

// NewDocumentID generates a fresh document identifier. One id is assigned
// per ingestion call and never reused: two uploads of the same file yield
// two distinct ids, so concurrent ingestions cannot interfere.
func NewDocumentID() string {
	return uuid.NewString()
}

// BuildBatch assigns stable identifiers and narrows metadata to the fixed
// key set, producing the store-ready batch for one document.
//
// The fragment at position i becomes chunk "{documentID}_{i}". Its
// metadata is built strictly from the allow-list: the human-supplied
// filename, the document id, the chunk index, the modality, and page_no
// read from the fragment's raw metadata when present. Every other raw key
// is dropped; that narrowing is intentional, not an error.
func BuildBatch(documentID, filename string, processed []ProcessedFragment) (driven.UpsertBatch, error) {
	batch := driven.UpsertBatch{
		IDs:        make([]string, len(processed)),
		Embeddings: make([][]float32, len(processed)),
		Metadatas:  make([]map[string]any, len(processed)),
		Documents:  make([]string, len(processed)),
	}

	for i, pf := range processed {
		meta := domain.FlatMetadata{
			Filename:   filename,
			DocumentID: documentID,
			ChunkIndex: i,
			Modality:   pf.Fragment.Modality,
			PageNo:     domain.PageNo(pf.Fragment.RawMetadata),
		}

		flat, err := domain.Flatten(meta.Map())
		if err != nil {
			return driven.UpsertBatch{}, fmt.Errorf("flatten metadata for chunk %d: %w", i, err)
		}

		batch.IDs[i] = fmt.Sprintf("%s_%d", documentID, i)
		batch.Embeddings[i] = pf.Embedding
		batch.Metadatas[i] = flat
		batch.Documents[i] = pf.Summary
	}

	return batch, nil
}
