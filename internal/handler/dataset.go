package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teso/internal/service"
)

// DatasetHandler handles HTTP requests for dataset administration.
type DatasetHandler struct {
	datasetService *service.DatasetService
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasetService *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

// Seed handles POST /v1/datasets/seed
func (h *DatasetHandler) Seed(c *gin.Context) {
	result, err := h.datasetService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, result)
}
