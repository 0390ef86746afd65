package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructResult(t *testing.T) {
	t.Run("full metadata", func(t *testing.T) {
		meta := map[string]any{
			MetaDocumentID: "doc-1",
			MetaChunkIndex: 2,
			MetaPageNo:     5,
			MetaModality:   "text",
		}

		r := ReconstructResult("summary text", meta)
		assert.Equal(t, "doc-1", r.DocumentID)
		assert.Equal(t, "2", r.ChunkID)
		assert.Equal(t, "summary text", r.Content)
		require.NotNil(t, r.PageNum)
		assert.Equal(t, 5, *r.PageNum)
		assert.Equal(t, meta, r.Metadata)
	})

	t.Run("JSON-decoded numeric chunk index", func(t *testing.T) {
		meta := map[string]any{
			MetaDocumentID: "doc-1",
			MetaChunkIndex: float64(7),
		}

		r := ReconstructResult("x", meta)
		assert.Equal(t, "7", r.ChunkID)
	})

	t.Run("missing fields default to zero values", func(t *testing.T) {
		r := ReconstructResult("content only", map[string]any{})
		assert.Empty(t, r.DocumentID)
		assert.Empty(t, r.ChunkID)
		assert.Nil(t, r.PageNum)
		assert.Equal(t, "content only", r.Content)
	})
}
