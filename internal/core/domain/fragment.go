package domain

// Modality identifies the content type of a parsed fragment.
// The set is open-ended: unknown values are treated as text downstream.
type Modality string

// Known modalities produced by the parser.
const (
	ModalityText  Modality = "text"
	ModalityTable Modality = "table"
	ModalityImage Modality = "image"
)

// Fragment is one unit extracted from a source document by the parser.
// It is consumed exactly once by the fragment pipeline and never mutated.
type Fragment struct {
	// Content is the extracted text representation. For image fragments
	// this is a reference (path or URI) rather than pixel data.
	Content string

	// Modality is the fragment's content type.
	Modality Modality

	// RawMetadata carries producer-defined keys (page number, bounding
	// box, source path, ...). The shape is not fixed; only the allow-listed
	// keys survive normalisation.
	RawMetadata map[string]any
}
