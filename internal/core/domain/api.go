package domain

// Inbound request/response shapes. These are transport-agnostic: the HTTP
// API, the CLI and the MCP adapter all speak them.

// Ingest outcome statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// IngestResponse confirms success or failure of one ingestion.
// On failure DocumentID is null and nothing was indexed.
type IngestResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	DocumentID *string `json:"document_id"`
}

// QueryRequest is an incoming search request.
type QueryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// QueryResponse carries the ranked results for one query, closest first.
// An empty list is a successful "no matches", distinct from a failure.
type QueryResponse struct {
	Results []QueryResult `json:"results"`
}
