// Package gemini provides a summariser adapter using the Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mosaic-search/mosaic/internal/core/ports/driven"
)

// Ensure Summariser implements the interface.
var _ driven.Summariser = (*Summariser)(nil)

// Default configuration values.
const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultModel       = "gemini-2.0-flash"
	DefaultTimeout     = 60 * time.Second
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 256

	// DefaultRequestsPerSecond keeps bursts of per-fragment calls under
	// the API's free-tier rate limit.
	DefaultRequestsPerSecond = 2
)

// systemInstruction frames every summarisation call, whatever the modality.
const systemInstruction = "You are an expert assistant specialized in technical summarization. " +
	"Create concise, clear, and accurate summaries for text, tables, and images. " +
	"When summarizing images, use both metadata and visual description if available."

// Per-modality prompt instructions.
const (
	textPrompt  = "Summarize the following technical text for quick understanding:\n%s"
	tablePrompt = "Summarize the following table or tabular data, highlighting key patterns, trends, and findings:\n%s"
	imagePrompt = "Given the following image metadata and description, create a clear and informative summary of the image's contents:\n%s"
)

// Config holds configuration for the Gemini summariser.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// BaseURL is the API base URL (default: the public Gemini endpoint).
	BaseURL string

	// Model is the generation model (default: gemini-2.0-flash).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls (default: 2).
	RequestsPerSecond float64
}

// Summariser produces fragment summaries via the Gemini generateContent API.
type Summariser struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the generateContent request format.
type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse is the generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// NewSummariser creates a new Gemini summariser.
func NewSummariser(cfg Config) (*Summariser, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Summariser{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// SummariseText condenses a text fragment.
func (s *Summariser) SummariseText(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, fmt.Sprintf(textPrompt, text))
}

// SummariseTable summarises tabular data, favouring patterns and trends
// over verbatim transcription.
func (s *Summariser) SummariseTable(ctx context.Context, table string) (string, error) {
	return s.generate(ctx, fmt.Sprintf(tablePrompt, table))
}

// SummariseImage summarises an image from its metadata alone.
func (s *Summariser) SummariseImage(ctx context.Context, metadata map[string]any) (string, error) {
	return s.generate(ctx, fmt.Sprintf(imagePrompt, formatMetadata(metadata)))
}

// generate runs one generateContent call and returns the first candidate's
// text, trimmed.
func (s *Summariser) generate(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("gemini error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text), nil
}

// formatMetadata renders an image fragment's metadata as prompt text,
// one "key: value" line per entry in stable order.
func formatMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return "No metadata provided."
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %v", k, metadata[k])
	}
	return b.String()
}

// ModelName returns the name of the generation model being used.
func (s *Summariser) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by fetching the model resource.
// This validates the API key and model name without running inference.
func (s *Summariser) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1beta/models/%s", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("gemini: failed to create ping request: %w", err)
	}
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("gemini: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("gemini: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *Summariser) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
