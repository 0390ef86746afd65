package mcp

import (
	"github.com/mosaic-search/mosaic/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query searches the index.
	Query driving.Querier

	// Ingest indexes documents. Optional; without it the ingest_file
	// tool is not registered.
	Ingest driving.Ingestor
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQuerier
	}
	return nil
}
