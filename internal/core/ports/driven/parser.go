package driven

import (
	"context"

	"github.com/mosaic-search/mosaic/internal/core/domain"
)

// Parser splits a file into typed fragments.
//
// Implementations may include:
//   - docling-serve (local or remote document conversion service)
type Parser interface {
	// Parse extracts the document at path into three modality lists.
	// Failures surface as a single parse-error condition.
	Parse(ctx context.Context, path string) (*ParseResult, error)

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ParseResult carries the typed fragments of one document.
type ParseResult struct {
	Texts  []domain.Fragment
	Tables []domain.Fragment
	Images []domain.Fragment
}

// Fragments returns the document-level fragment list in canonical order:
// text fragments, then tables, then images. Chunk indexes are assigned
// from this order.
func (r *ParseResult) Fragments() []domain.Fragment {
	out := make([]domain.Fragment, 0, len(r.Texts)+len(r.Tables)+len(r.Images))
	out = append(out, r.Texts...)
	out = append(out, r.Tables...)
	out = append(out, r.Images...)
	return out
}
