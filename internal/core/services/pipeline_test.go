package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-search/mosaic/internal/core/domain"
)

func TestFragmentPipeline_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches by modality and keeps input order", func(t *testing.T) {
		summariser := &mockSummariser{}
		embedder := &mockEmbedder{}
		pipeline := NewFragmentPipeline(summariser, embedder)

		fragments := []domain.Fragment{
			{Content: "intro", Modality: domain.ModalityText},
			{Content: "methods", Modality: domain.ModalityText},
			{Content: "| a | b |", Modality: domain.ModalityTable},
			{Content: "fig-1", Modality: domain.ModalityImage},
		}

		results, err := pipeline.Process(ctx, fragments)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, "text summary of intro", results[0].Summary)
		assert.Equal(t, "text summary of methods", results[1].Summary)
		assert.Equal(t, "table summary of | a | b |", results[2].Summary)
		assert.Equal(t, "image summary", results[3].Summary)

		assert.Equal(t, 2, summariser.textCalls)
		assert.Equal(t, 1, summariser.tableCalls)
		assert.Equal(t, 1, summariser.imageCalls)

		// Result i must carry fragment i regardless of completion order.
		for i := range fragments {
			assert.Equal(t, fragments[i], results[i].Fragment)
			assert.NotEmpty(t, results[i].Embedding)
		}
	})

	t.Run("embeds the summary, not the fragment content", func(t *testing.T) {
		summariser := &mockSummariser{}
		embedder := &mockEmbedder{}
		pipeline := NewFragmentPipeline(summariser, embedder)

		_, err := pipeline.Process(ctx, []domain.Fragment{
			{Content: "body", Modality: domain.ModalityText},
		})
		require.NoError(t, err)

		require.Len(t, embedder.calls, 1)
		assert.Equal(t, "text summary of body", embedder.calls[0])
	})

	t.Run("unknown modality falls back to text", func(t *testing.T) {
		summariser := &mockSummariser{}
		pipeline := NewFragmentPipeline(summariser, &mockEmbedder{})

		results, err := pipeline.Process(ctx, []domain.Fragment{
			{Content: "x", Modality: domain.Modality("chart")},
		})
		require.NoError(t, err)
		assert.Equal(t, "text summary of x", results[0].Summary)
		assert.Equal(t, 1, summariser.textCalls)
	})

	t.Run("summarisation failure fails the document", func(t *testing.T) {
		summariser := &mockSummariser{tableErr: errors.New("model unavailable")}
		pipeline := NewFragmentPipeline(summariser, &mockEmbedder{})

		results, err := pipeline.Process(ctx, []domain.Fragment{
			{Content: "fine", Modality: domain.ModalityText},
			{Content: "broken", Modality: domain.ModalityTable},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSummarise)
		assert.Nil(t, results)
	})

	t.Run("embedding failure fails the document", func(t *testing.T) {
		embedder := &mockEmbedder{err: errors.New("connection refused")}
		pipeline := NewFragmentPipeline(&mockSummariser{}, embedder)

		results, err := pipeline.Process(ctx, []domain.Fragment{
			{Content: "a", Modality: domain.ModalityText},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmbedding)
		assert.Nil(t, results)
	})

	t.Run("empty input yields no output and no calls", func(t *testing.T) {
		summariser := &mockSummariser{}
		pipeline := NewFragmentPipeline(summariser, &mockEmbedder{})

		results, err := pipeline.Process(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, results)
		assert.Zero(t, summariser.textCalls)
	})

	t.Run("alignment holds with many fragments and small fan-out", func(t *testing.T) {
		pipeline := NewFragmentPipeline(&mockSummariser{}, &mockEmbedder{}, WithFanOut(2))

		fragments := make([]domain.Fragment, 20)
		for i := range fragments {
			fragments[i] = domain.Fragment{
				Content:  fmt.Sprintf("fragment-%d", i),
				Modality: domain.ModalityText,
			}
		}

		results, err := pipeline.Process(ctx, fragments)
		require.NoError(t, err)
		require.Len(t, results, 20)
		for i := range results {
			assert.Equal(t, fmt.Sprintf("text summary of fragment-%d", i), results[i].Summary)
		}
	})
}
