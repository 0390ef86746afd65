package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mosaic-search/mosaic/internal/core/domain"
	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// DefaultFanOut bounds how many fragments are summarised and embedded
// concurrently within one document.
const DefaultFanOut = 4

// ProcessedFragment pairs a fragment with its summary and the embedding
// computed over that summary.
type ProcessedFragment struct {
	Fragment  domain.Fragment
	Summary   string
	Embedding []float32
}

// FragmentPipeline turns typed fragments into (summary, embedding) pairs,
// dispatching to the summariser by modality. Every fragment - text, table
// or image - ends up embedded over text.
type FragmentPipeline struct {
	summariser driven.Summariser
	embedder   driven.EmbeddingService
	fanOut     int
}

// PipelineOption configures the fragment pipeline.
type PipelineOption func(*FragmentPipeline)

// WithFanOut sets the per-document concurrency bound.
func WithFanOut(n int) PipelineOption {
	return func(p *FragmentPipeline) {
		if n > 0 {
			p.fanOut = n
		}
	}
}

// NewFragmentPipeline creates a new fragment pipeline.
func NewFragmentPipeline(
	summariser driven.Summariser,
	embedder driven.EmbeddingService,
	opts ...PipelineOption,
) *FragmentPipeline {
	p := &FragmentPipeline{
		summariser: summariser,
		embedder:   embedder,
		fanOut:     DefaultFanOut,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process summarises and embeds every fragment. Fragments are processed
// concurrently up to the fan-out bound, but the returned slice is aligned
// with the input: results[i] always belongs to fragments[i], so chunk
// indexes stay faithful to the parser's order.
//
// A failure on any fragment cancels the rest and fails the whole call:
// a partially embedded document is unsearchable in parts and
// indistinguishable from data loss.
func (p *FragmentPipeline) Process(ctx context.Context, fragments []domain.Fragment) ([]ProcessedFragment, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	logger.Debug("Pipeline: processing %d fragments (fan-out %d)", len(fragments), p.fanOut)

	results := make([]ProcessedFragment, len(fragments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fanOut)

	for i, frag := range fragments {
		g.Go(func() error {
			summary, err := p.summarise(ctx, frag)
			if err != nil {
				return fmt.Errorf("%w: fragment %d (%s): %w", domain.ErrSummarise, i, frag.Modality, err)
			}

			embedding, err := p.embedder.Embed(ctx, summary)
			if err != nil {
				return fmt.Errorf("%w: fragment %d (%s): %w", domain.ErrEmbedding, i, frag.Modality, err)
			}

			results[i] = ProcessedFragment{
				Fragment:  frag,
				Summary:   summary,
				Embedding: embedding,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("Pipeline: aborting document: %v", err)
		return nil, err
	}

	logger.Debug("Pipeline: %d fragments processed", len(results))
	return results, nil
}

// summarise dispatches one fragment to the modality-specific call.
// Unknown modalities are treated as text.
func (p *FragmentPipeline) summarise(ctx context.Context, frag domain.Fragment) (string, error) {
	switch frag.Modality {
	case domain.ModalityTable:
		return p.summariser.SummariseTable(ctx, frag.Content)
	case domain.ModalityImage:
		return p.summariser.SummariseImage(ctx, frag.RawMetadata)
	default:
		return p.summariser.SummariseText(ctx, frag.Content)
	}
}
