package cli

import (
	"fmt"

	"github.com/mosaic-search/mosaic/internal/adapters/driven/embedding/ollama"
	"github.com/mosaic-search/mosaic/internal/adapters/driven/llm/gemini"
	"github.com/mosaic-search/mosaic/internal/adapters/driven/parser/docling"
	"github.com/mosaic-search/mosaic/internal/adapters/driven/vectorstore/chroma"
	"github.com/mosaic-search/mosaic/internal/adapters/driven/vectorstore/memory"
	"github.com/mosaic-search/mosaic/internal/adapters/driven/vectorstore/sqlite"
	"github.com/mosaic-search/mosaic/internal/config"
	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
	"github.com/mosaic-search/mosaic/internal/core/services"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// app holds the assembled service graph for one command invocation.
type app struct {
	Ingestor *services.IngestService
	Querier  *services.QueryService

	closers []func() error
}

// buildApp wires driven adapters into the core services from the loaded
// configuration. Callers must Close the returned app.
func buildApp(cfg config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{}

	parser := docling.New(docling.Config{
		BaseURL: cfg.Parser.BaseURL,
		Timeout: cfg.ParserTimeout(),
	})
	a.closers = append(a.closers, parser.Close)

	summariser, err := gemini.NewSummariser(gemini.Config{
		APIKey:            cfg.Summarise.APIKey,
		BaseURL:           cfg.Summarise.BaseURL,
		Model:             cfg.Summarise.Model,
		Timeout:           cfg.SummariseTimeout(),
		RequestsPerSecond: cfg.Summarise.RequestsPerSecond,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating summariser: %w", err)
	}
	a.closers = append(a.closers, summariser.Close)

	embedder := ollama.NewEmbeddingService(ollama.Config{
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Timeout:    cfg.EmbeddingTimeout(),
		Dimensions: cfg.Embedding.Dimensions,
	})
	a.closers = append(a.closers, embedder.Close)

	store, err := buildStore(cfg.Store)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, store.Close)

	pipeline := services.NewFragmentPipeline(summariser, embedder,
		services.WithFanOut(cfg.Pipeline.FanOut))

	a.Ingestor = services.NewIngestService(parser, pipeline, store, cfg.Server.UploadsDir)
	a.Querier = services.NewQueryService(embedder, store)

	logger.Debug("Service graph assembled (store backend: %s)", cfg.Store.Backend)
	return a, nil
}

// buildStore selects the vector store backend from configuration.
func buildStore(cfg config.StoreConfig) (driven.VectorStore, error) {
	switch cfg.Backend {
	case config.StoreChroma:
		return chroma.New(chroma.Config{
			BaseURL:    cfg.ChromaURL,
			APIKey:     cfg.ChromaAPIKey,
			Tenant:     cfg.ChromaTenant,
			Database:   cfg.ChromaDatabase,
			Collection: cfg.ChromaCollection,
		}), nil
	case config.StoreSQLite:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite store: %w", err)
		}
		return store, nil
	case config.StoreMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Close releases all adapter resources in reverse order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Closing adapter: %v", err)
		}
	}
}
