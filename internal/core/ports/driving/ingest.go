package driving

import "context"

// Ingestor indexes uploaded documents.
type Ingestor interface {
	// Ingest parses, summarises, embeds and indexes one document.
	// It returns the freshly assigned document id on success. On any
	// error nothing is indexed and no id is considered assigned.
	Ingest(ctx context.Context, filename string, data []byte) (string, error)
}
