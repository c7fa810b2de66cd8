package handler

import (
	"net/http"

	"flowbit/internal/ingest"
	"flowbit/pkg/response"

	"github.com/gin-gonic/gin"
)

type IngestHandler struct {
	ingestor *ingest.Ingestor
}

func NewIngestHandler(ingestor *ingest.Ingestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

func (h *IngestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/ingest", h.IngestBatch)
}

// IngestBatch accepts a raw invoice batch (a JSON array, or an object with
// an invoices array) and runs it through the ingestion pipeline. Per-record
// failures are reported in the run report, not as an HTTP error.
func (h *IngestHandler) IngestBatch(c *gin.Context) {
	batch, err := ingest.DecodeBatch(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid batch payload: "+err.Error()))
		return
	}

	report, err := h.ingestor.Run(c.Request.Context(), batch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
