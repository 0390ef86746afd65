// Package docling provides a parser adapter backed by a docling-serve
// document conversion service.
package docling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mosaic-search/mosaic/internal/core/domain"
	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:5001"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the docling parser service.
type Config struct {
	// BaseURL is the docling-serve base URL (default: http://localhost:5001).
	BaseURL string

	// Timeout is the request timeout (default: 120s). Parsing large
	// documents is the slowest remote call in the pipeline.
	Timeout time.Duration
}

// Parser extracts typed fragments from documents via docling-serve.
type Parser struct {
	client  *http.Client
	baseURL string
}

// parseFragment is the wire format for one extracted fragment.
type parseFragment struct {
	Content  string         `json:"content"`
	Ref      string         `json:"ref,omitempty"`
	Metadata map[string]any `json:"metadata"`
}

// parseResponse is the wire format of a successful conversion.
type parseResponse struct {
	Texts  []parseFragment `json:"texts"`
	Tables []parseFragment `json:"tables"`
	Images []parseFragment `json:"images"`
}

// New creates a new docling parser adapter.
func New(cfg Config) *Parser {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Parser{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Parse uploads the file at path and returns its typed fragments.
func (p *Parser) Parse(ctx context.Context, path string) (*driven.ParseResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	formFile, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(formFile, file); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalise form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/parse", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("docling error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("docling error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &driven.ParseResult{
		Texts:  toFragments(parsed.Texts, domain.ModalityText),
		Tables: toFragments(parsed.Tables, domain.ModalityTable),
		Images: toFragments(parsed.Images, domain.ModalityImage),
	}, nil
}

// toFragments converts wire fragments to domain fragments. Image entries
// carry a reference rather than extracted text.
func toFragments(in []parseFragment, modality domain.Modality) []domain.Fragment {
	out := make([]domain.Fragment, len(in))
	for i, f := range in {
		content := f.Content
		if modality == domain.ModalityImage && content == "" {
			content = f.Ref
		}
		out[i] = domain.Fragment{
			Content:     content,
			Modality:    modality,
			RawMetadata: f.Metadata,
		}
	}
	return out
}

// Ping validates the service is reachable via its health endpoint.
func (p *Parser) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("docling: failed to create ping request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("docling: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("docling: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (p *Parser) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
