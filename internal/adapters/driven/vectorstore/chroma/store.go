// Package chroma provides a vector store adapter for the Chroma REST API.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultTenant     = "default_tenant"
	DefaultDatabase   = "default_database"
	DefaultCollection = "mosaic_chunks"
	DefaultTimeout    = 30 * time.Second
)

// Config holds configuration for the Chroma store.
type Config struct {
	// BaseURL is the Chroma server base URL (default: http://localhost:8000).
	BaseURL string

	// APIKey authenticates against Chroma Cloud. Empty for local servers.
	APIKey string

	// Tenant and Database scope the collection (Chroma v2 API).
	Tenant   string
	Database string

	// Collection is the single unified collection for all document
	// chunks, across modalities (default: mosaic_chunks).
	Collection string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a REST client to one Chroma collection. The collection is
// created on first use if it does not exist.
type Store struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	tenant     string
	database   string
	collection string

	mu           sync.Mutex
	collectionID string
}

// New creates a new Chroma store adapter.
func New(cfg Config) *Store {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Tenant == "" {
		cfg.Tenant = DefaultTenant
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		tenant:     cfg.Tenant,
		database:   cfg.Database,
		collection: cfg.Collection,
	}
}

// Upsert writes the batch to the collection in one call. Existing ids are
// overwritten.
func (s *Store) Upsert(ctx context.Context, batch driven.UpsertBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	collID, err := s.ensureCollection(ctx)
	if err != nil {
		return err
	}

	body := map[string]any{
		"ids":        batch.IDs,
		"embeddings": batch.Embeddings,
		"metadatas":  batch.Metadatas,
		"documents":  batch.Documents,
	}

	url := fmt.Sprintf("%s/collections/%s/upsert", s.databaseURL(), collID)
	return s.postJSON(ctx, url, body, nil)
}

// queryResponse is the collection query wire format. Documents and
// metadatas come back as one inner list per query embedding.
type queryResponse struct {
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
}

// Query returns up to topK matches ordered by similarity, closest first.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]driven.Match, error) {
	collID, err := s.ensureCollection(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"query_embeddings": [][]float32{embedding},
		"n_results":        topK,
		"include":          []string{"documents", "metadatas"},
	}

	var resp queryResponse
	url := fmt.Sprintf("%s/collections/%s/query", s.databaseURL(), collID)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Documents) == 0 {
		return []driven.Match{}, nil
	}

	docs := resp.Documents[0]

	// Metadatas can be absent or shorter than documents; entries without
	// metadata still count as matches.
	var metas []map[string]any
	if len(resp.Metadatas) > 0 {
		metas = resp.Metadatas[0]
	}

	matches := make([]driven.Match, 0, len(docs))
	for i, doc := range docs {
		var meta map[string]any
		if i < len(metas) {
			meta = metas[i]
		}
		if meta == nil {
			meta = map[string]any{}
		}
		matches = append(matches, driven.Match{Content: doc, Metadata: meta})
	}
	return matches, nil
}

// ensureCollection resolves (and lazily creates) the collection id.
func (s *Store) ensureCollection(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collectionID != "" {
		return s.collectionID, nil
	}

	body := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, s.databaseURL()+"/collections", body, &resp); err != nil {
		return "", fmt.Errorf("ensure collection %q: %w", s.collection, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("ensure collection %q: server returned no id", s.collection)
	}

	s.collectionID = resp.ID
	return s.collectionID, nil
}

// databaseURL is the v2 API prefix scoped to tenant and database.
func (s *Store) databaseURL() string {
	return fmt.Sprintf("%s/api/v2/tenants/%s/databases/%s", s.baseURL, s.tenant, s.database)
}

// postJSON performs one JSON request/response round trip.
func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-chroma-token", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("chroma error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("chroma error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Ping validates the server is reachable via its healthcheck endpoint.
func (s *Store) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v2/healthcheck", http.NoBody)
	if err != nil {
		return fmt.Errorf("chroma: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("chroma: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chroma: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
