package api

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mosaic-search/mosaic/internal/core/domain"
	"github.com/mosaic-search/mosaic/internal/core/ports/driving"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// Handler serves the ingestion and query endpoints.
type Handler struct {
	ingestor driving.Ingestor
	querier  driving.Querier
}

// NewHandler creates a handler bound to the given services.
func NewHandler(ingestor driving.Ingestor, querier driving.Querier) *Handler {
	return &Handler{
		ingestor: ingestor,
		querier:  querier,
	}
}

// Ingest accepts a multipart document upload and runs it through the
// full pipeline. Pipeline failures are reported in the response body
// with an error status rather than an HTTP error, so callers always
// get the same response shape.
func (h *Handler) Ingest(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.IngestResponse{
			Status:  domain.StatusError,
			Message: "missing form file: " + err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.IngestResponse{
			Status:  domain.StatusError,
			Message: "opening upload: " + err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.IngestResponse{
			Status:  domain.StatusError,
			Message: "reading upload: " + err.Error(),
		})
		return
	}

	filename := filepath.Base(fileHeader.Filename)

	documentID, err := h.ingestor.Ingest(c.Request.Context(), filename, data)
	if err != nil {
		logger.Warn("Ingestion of %s failed: %v", filename, err)
		c.JSON(http.StatusOK, domain.IngestResponse{
			Status:  domain.StatusError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.IngestResponse{
		Status:     domain.StatusSuccess,
		Message:    "Document indexed successfully",
		DocumentID: &documentID,
	})
}

// Query embeds the query text and returns the closest indexed chunks.
func (h *Handler) Query(c *gin.Context) {
	var req domain.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.querier.Query(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		logger.Warn("Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.QueryResponse{Results: results})
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "mosaic"})
}
