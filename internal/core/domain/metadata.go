package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Metadata keys stored with every chunk. The key set is fixed and small:
// the retrieval path only reconstructs display information, it never
// re-derives parsing context.
const (
	MetaFilename   = "filename"
	MetaDocumentID = "document_id"
	MetaChunkIndex = "chunk_index"
	MetaModality   = "modality"
	MetaPageNo     = "page_no"
)

// FlatMetadata is the restricted metadata shape persisted with a chunk.
// Every field maps to exactly one store key; PageNo is nil when the parser
// did not report a page number.
type FlatMetadata struct {
	Filename   string
	DocumentID string
	ChunkIndex int
	Modality   Modality
	PageNo     *int
}

// Map renders the record as the map handed to the vector store.
// All values are primitive by construction; absent page numbers are
// recorded as explicit nulls.
func (m FlatMetadata) Map() map[string]any {
	out := map[string]any{
		MetaFilename:   m.Filename,
		MetaDocumentID: m.DocumentID,
		MetaChunkIndex: m.ChunkIndex,
		MetaModality:   string(m.Modality),
		MetaPageNo:     nil,
	}
	if m.PageNo != nil {
		out[MetaPageNo] = *m.PageNo
	}
	return out
}

// Flatten returns a copy of md in which every non-primitive value has been
// replaced by its JSON text form. Primitive values (strings, integers,
// floats, booleans, nil) pass through unchanged, so flattening an already
// flat map is the identity. A value that cannot be JSON-serialised is a
// precondition violation and fails visibly.
func Flatten(md map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(md))
	for k, v := range md {
		if isPrimitive(v) {
			out[k] = v
			continue
		}
		text, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata key %q is not JSON-serialisable: %w", ErrInvalidInput, k, err)
		}
		out[k] = string(text)
	}
	return out, nil
}

// isPrimitive reports whether v can be stored as-is.
func isPrimitive(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// PageNo extracts a page number from raw parser metadata, accepting the
// numeric encodings JSON decoding produces. Returns nil when the key is
// missing or not usable as an integer.
func PageNo(raw map[string]any) *int {
	v, ok := raw[MetaPageNo]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case int:
		return &n
	case int64:
		p := int(n)
		return &p
	case float64:
		if n != math.Trunc(n) {
			return nil
		}
		p := int(n)
		return &p
	default:
		return nil
	}
}
