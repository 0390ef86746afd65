package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mosaic-search/mosaic/internal/core/ports/driving"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(ingestor driving.Ingestor, querier driving.Querier) *gin.Engine {
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h := NewHandler(ingestor, querier)

	r.GET("/health", h.Health)
	r.POST("/ingest", h.Ingest)
	r.POST("/query", h.Query)

	return r
}
