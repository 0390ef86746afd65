package driven

import "context"

// Summariser turns modality-specific input into descriptive text.
// Each call is independent and stateless: no information leaks between
// fragments. The result is always plain text, never a structured value.
//
// Implementations may include:
//   - Gemini (gemini-2.0-flash)
//   - Ollama (local models)
type Summariser interface {
	// SummariseText condenses a text fragment for quick understanding.
	SummariseText(ctx context.Context, content string) (string, error)

	// SummariseTable summarises tabular data, highlighting salient
	// patterns and trends rather than transcribing it verbatim.
	SummariseTable(ctx context.Context, content string) (string, error)

	// SummariseImage summarises an image purely from its metadata and
	// description. No pixel-level vision input is involved.
	SummariseImage(ctx context.Context, metadata map[string]any) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
