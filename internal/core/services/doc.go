// Package services implements the core pipeline: the fragment pipeline
// (per-modality summarisation and embedding), the normaliser (identifier
// assignment and metadata narrowing), the ingest orchestration with its
// batch upsert, and the query pipeline.
package services
