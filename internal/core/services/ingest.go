package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mosaic-search/mosaic/internal/core/domain"
	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
	"github.com/mosaic-search/mosaic/internal/core/ports/driving"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService orchestrates one document's ingestion: save the upload,
// parse it into fragments, run the fragment pipeline, normalise into
// store-ready chunks and upsert them as one batch.
type IngestService struct {
	parser     driven.Parser
	pipeline   *FragmentPipeline
	store      driven.VectorStore
	uploadsDir string
}

// NewIngestService creates a new ingest service. Uploaded files are kept
// under uploadsDir; they are not cleaned up when an ingestion fails.
func NewIngestService(
	parser driven.Parser,
	pipeline *FragmentPipeline,
	store driven.VectorStore,
	uploadsDir string,
) *IngestService {
	return &IngestService{
		parser:     parser,
		pipeline:   pipeline,
		store:      store,
		uploadsDir: uploadsDir,
	}
}

// Ingest indexes one uploaded document and returns its document id.
//
// Ingestion is all-or-nothing: any stage failure returns a stage-tagged
// error and leaves nothing of the document queryable. The saved upload
// may remain on disk after a failure; that is an accepted side effect.
func (s *IngestService) Ingest(ctx context.Context, filename string, data []byte) (string, error) {
	logger.Section("Ingest")
	logger.Debug("File: %q (%d bytes)", filename, len(data))

	path, err := s.saveUpload(filename, data)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	logger.Debug("Saved upload to %s", path)

	parsed, err := s.parser.Parse(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}

	fragments := parsed.Fragments()
	logger.Info("Parsed %d fragments (%d text, %d table, %d image)",
		len(fragments), len(parsed.Texts), len(parsed.Tables), len(parsed.Images))

	// An empty document would get a document id that refers to nothing.
	if len(fragments) == 0 {
		return "", fmt.Errorf("%w: document produced no fragments", domain.ErrParseFailure)
	}

	processed, err := s.pipeline.Process(ctx, fragments)
	if err != nil {
		return "", err
	}

	documentID := NewDocumentID()

	batch, err := BuildBatch(documentID, filename, processed)
	if err != nil {
		return "", err
	}

	if err := s.store.Upsert(ctx, batch); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrIndexWrite, err)
	}

	logger.Info("Indexed document %s: %d chunks", documentID, batch.Len())
	return documentID, nil
}

// saveUpload writes the raw bytes under the uploads directory with a
// timestamp plus a short unique prefix, so re-uploads of the same name
// never collide.
func (s *IngestService) saveUpload(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o700); err != nil {
		return "", err
	}

	unique := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102150405"),
		uuid.NewString()[:8],
		filepath.Base(filename))
	path := filepath.Join(s.uploadsDir, unique)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
