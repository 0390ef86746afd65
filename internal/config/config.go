// Package config loads mosaic configuration from a TOML file with
// environment variable overrides for deployment secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Store backends.
const (
	StoreChroma = "chroma"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Parser    ParserConfig    `toml:"parser"`
	Summarise SummariseConfig `toml:"summarise"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Store     StoreConfig     `toml:"store"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default :8080).
	Addr string `toml:"addr"`

	// UploadsDir is where uploaded documents are persisted before parsing.
	UploadsDir string `toml:"uploads_dir"`
}

// ParserConfig configures the document parsing service.
type ParserConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SummariseConfig configures the LLM summarisation backend.
type SummariseConfig struct {
	// APIKey authenticates against the Gemini API. Usually supplied via
	// the GEMINI_API_KEY environment variable rather than the file.
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// EmbeddingConfig configures the embedding backend.
type EmbeddingConfig struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Dimensions     int    `toml:"dimensions"`
}

// StoreConfig selects and configures the vector store backend.
type StoreConfig struct {
	// Backend is one of "chroma", "sqlite" or "memory" (default chroma).
	Backend string `toml:"backend"`

	// Chroma settings.
	ChromaURL        string `toml:"chroma_url"`
	ChromaAPIKey     string `toml:"chroma_api_key"`
	ChromaTenant     string `toml:"chroma_tenant"`
	ChromaDatabase   string `toml:"chroma_database"`
	ChromaCollection string `toml:"chroma_collection"`

	// DataDir is the local data directory for the sqlite backend.
	DataDir string `toml:"data_dir"`
}

// PipelineConfig tunes fragment processing.
type PipelineConfig struct {
	// FanOut caps how many fragments are summarised and embedded
	// concurrently (default 4).
	FanOut int `toml:"fan_out"`
}

// Default returns a configuration populated with working local defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:       ":8080",
			UploadsDir: "uploads",
		},
		Parser: ParserConfig{
			BaseURL:        "http://localhost:5001",
			TimeoutSeconds: 120,
		},
		Summarise: SummariseConfig{
			BaseURL:           "https://generativelanguage.googleapis.com",
			Model:             "gemini-2.0-flash",
			TimeoutSeconds:    60,
			RequestsPerSecond: 2,
		},
		Embedding: EmbeddingConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "nomic-embed-text",
			TimeoutSeconds: 30,
			Dimensions:     768,
		},
		Store: StoreConfig{
			Backend:          StoreChroma,
			ChromaURL:        "http://localhost:8000",
			ChromaCollection: "mosaic_chunks",
		},
		Pipeline: PipelineConfig{
			FanOut: 4,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.mosaic/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".mosaic", "config.toml"), nil
}

// Load reads configuration from the given TOML file, falling back to
// defaults for anything the file omits, then applies environment
// variable overrides. A missing file is not an error; defaults and the
// environment still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file yet - defaults apply
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values from the environment. Secrets are
// expected to arrive this way.
func (c *Config) applyEnv() {
	setString(&c.Summarise.APIKey, "GEMINI_API_KEY")
	setString(&c.Summarise.BaseURL, "GEMINI_BASE_URL")
	setString(&c.Summarise.Model, "GEMINI_MODEL")
	setString(&c.Parser.BaseURL, "DOCLING_URL")
	setString(&c.Embedding.BaseURL, "OLLAMA_URL")
	setString(&c.Embedding.Model, "EMBEDDING_MODEL")
	setString(&c.Store.Backend, "MOSAIC_STORE_BACKEND")
	setString(&c.Store.ChromaURL, "CHROMA_URL")
	setString(&c.Store.ChromaAPIKey, "CHROMA_API_KEY")
	setString(&c.Store.ChromaTenant, "CHROMA_TENANT")
	setString(&c.Store.ChromaDatabase, "CHROMA_DATABASE")
	setString(&c.Store.ChromaCollection, "CHROMA_COLLECTION")
	setString(&c.Server.Addr, "MOSAIC_ADDR")
	setString(&c.Server.UploadsDir, "MOSAIC_UPLOADS_DIR")
	setInt(&c.Pipeline.FanOut, "MOSAIC_FAN_OUT")
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreChroma, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Summarise.APIKey == "" {
		return fmt.Errorf("summarise API key is required (set GEMINI_API_KEY)")
	}

	if c.Pipeline.FanOut < 0 {
		return fmt.Errorf("pipeline fan_out must not be negative")
	}

	return nil
}

// ParserTimeout returns the parser timeout as a duration.
func (c *Config) ParserTimeout() time.Duration {
	return time.Duration(c.Parser.TimeoutSeconds) * time.Second
}

// SummariseTimeout returns the summariser timeout as a duration.
func (c *Config) SummariseTimeout() time.Duration {
	return time.Duration(c.Summarise.TimeoutSeconds) * time.Second
}

// EmbeddingTimeout returns the embedding timeout as a duration.
func (c *Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSeconds) * time.Second
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
