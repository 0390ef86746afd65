package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-search/mosaic/internal/core/domain"
)

func TestNewDocumentID(t *testing.T) {
	a := NewDocumentID()
	b := NewDocumentID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestBuildBatch(t *testing.T) {
	t.Run("ids follow document id and position", func(t *testing.T) {
		processed := []ProcessedFragment{
			{
				Fragment: domain.Fragment{Modality: domain.ModalityText},
				Summary:  "first",
			},
			{
				Fragment: domain.Fragment{Modality: domain.ModalityText},
				Summary:  "second",
			},
			{
				Fragment: domain.Fragment{Modality: domain.ModalityTable},
				Summary:  "third",
			},
		}

		batch, err := BuildBatch("doc-9", "paper.pdf", processed)
		require.NoError(t, err)
		require.NoError(t, batch.Validate())
		assert.Equal(t, []string{"doc-9_0", "doc-9_1", "doc-9_2"}, batch.IDs)
		assert.Equal(t, []string{"first", "second", "third"}, batch.Documents)
	})

	t.Run("metadata carries only the fixed key set", func(t *testing.T) {
		processed := []ProcessedFragment{
			{
				Fragment: domain.Fragment{
					Modality: domain.ModalityImage,
					RawMetadata: map[string]any{
						"page_no": 3,
						"bbox":    map[string]any{"x": 1},
						"dpi":     300,
					},
				},
				Summary: "an image",
			},
		}

		batch, err := BuildBatch("doc-1", "scan.pdf", processed)
		require.NoError(t, err)

		meta := batch.Metadatas[0]
		assert.Equal(t, "scan.pdf", meta[domain.MetaFilename])
		assert.Equal(t, "doc-1", meta[domain.MetaDocumentID])
		assert.Equal(t, 0, meta[domain.MetaChunkIndex])
		assert.Equal(t, "image", meta[domain.MetaModality])
		assert.Equal(t, 3, meta[domain.MetaPageNo])

		// Raw parser keys outside the allow-list must not leak through.
		assert.NotContains(t, meta, "bbox")
		assert.NotContains(t, meta, "dpi")
		assert.Len(t, meta, 5)
	})

	t.Run("missing page number stored as null", func(t *testing.T) {
		processed := []ProcessedFragment{
			{Fragment: domain.Fragment{Modality: domain.ModalityText}, Summary: "s"},
		}

		batch, err := BuildBatch("doc-2", "notes.md", processed)
		require.NoError(t, err)

		val, ok := batch.Metadatas[0][domain.MetaPageNo]
		require.True(t, ok)
		assert.Nil(t, val)
	})

	t.Run("embeddings stay index aligned", func(t *testing.T) {
		processed := make([]ProcessedFragment, 5)
		for i := range processed {
			processed[i] = ProcessedFragment{
				Fragment:  domain.Fragment{Modality: domain.ModalityText},
				Summary:   fmt.Sprintf("summary %d", i),
				Embedding: []float32{float32(i)},
			}
		}

		batch, err := BuildBatch("doc-3", "f.pdf", processed)
		require.NoError(t, err)
		for i := range processed {
			assert.Equal(t, []float32{float32(i)}, batch.Embeddings[i])
			assert.Equal(t, i, batch.Metadatas[i][domain.MetaChunkIndex])
		}
	})
}
