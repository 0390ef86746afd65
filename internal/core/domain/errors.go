package domain

import "errors"

// Stage-tagged errors. Each pipeline stage catches only its own
// external-call failures and wraps them with the matching sentinel, so
// callers can classify a failure with errors.Is without parsing messages.
// All of these are ingestion- or query-scoped, never process-fatal.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrParseFailure indicates the parser could not split the document.
	ErrParseFailure = errors.New("parse failure")

	// ErrSummarise indicates a fragment summarisation call failed.
	// One failed fragment aborts the whole document's ingestion.
	ErrSummarise = errors.New("summarisation failure")

	// ErrEmbedding indicates a fragment embedding call failed during ingestion.
	ErrEmbedding = errors.New("embedding failure")

	// ErrIndexWrite indicates the batch upsert to the vector store failed.
	// No document id is considered assigned after this error.
	ErrIndexWrite = errors.New("index write failure")

	// ErrQueryEmbedding indicates the query text could not be embedded.
	ErrQueryEmbedding = errors.New("query embedding failure")

	// ErrQuerySearch indicates the similarity search failed.
	ErrQuerySearch = errors.New("query search failure")
)
