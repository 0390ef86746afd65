package domain

import "strconv"

// DefaultTopK is the number of results returned when a query does not
// specify a positive top_k.
const DefaultTopK = 5

// QueryResult is a reconstructed view of one retrieved chunk. It is built
// fresh per query from the (content, metadata) pair the store returns and
// never persisted.
type QueryResult struct {
	// DocumentID is read back out of the stored metadata. Empty when the
	// store returned metadata without it; that is a recovery path, not an
	// error, since metadata is store-controlled.
	DocumentID string `json:"document_id"`

	// ChunkID is the chunk's index within its document, as a string.
	ChunkID string `json:"chunk_id"`

	// Content is the summarised text stored alongside the embedding.
	Content string `json:"content"`

	// PageNum is best-effort from metadata; nil when unavailable.
	PageNum *int `json:"page_num"`

	// Metadata is the full flattened map as stored.
	Metadata map[string]any `json:"metadata"`
}

// ReconstructResult builds a QueryResult from a stored (content, metadata)
// pair, defaulting fields the metadata does not carry.
func ReconstructResult(content string, metadata map[string]any) QueryResult {
	r := QueryResult{
		Content:  content,
		Metadata: metadata,
		PageNum:  PageNo(metadata),
	}
	if v, ok := metadata[MetaDocumentID].(string); ok {
		r.DocumentID = v
	}
	switch v := metadata[MetaChunkIndex].(type) {
	case int:
		r.ChunkID = strconv.Itoa(v)
	case int64:
		r.ChunkID = strconv.FormatInt(v, 10)
	case float64:
		r.ChunkID = strconv.Itoa(int(v))
	case string:
		r.ChunkID = v
	}
	return r
}
