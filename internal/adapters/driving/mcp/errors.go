// Package mcp provides an MCP (Model Context Protocol) server adapter for
// mosaic. It lets AI assistants query the index and ingest local files.
package mcp

import "errors"

// ErrMissingQuerier is returned when the query service is not provided.
var ErrMissingQuerier = errors.New("mcp: query service is required")
