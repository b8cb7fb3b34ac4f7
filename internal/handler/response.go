package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teso/internal/repository"
	"teso/internal/service"
	"teso/internal/simulation"
	"teso/internal/source"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service and engine errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrNoCurrentRun):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrAlreadySeeded),
		errors.Is(err, service.ErrSimulationInProgress):
		return http.StatusConflict

	// Bad data errors
	case errors.Is(err, service.ErrNoSeedData),
		errors.Is(err, source.ErrEmptyDataset),
		errors.Is(err, simulation.ErrMissingFinancials),
		errors.Is(err, simulation.ErrMalformedFinancials):
		return http.StatusUnprocessableEntity

	// No data source could be resolved
	case errors.Is(err, simulation.ErrNoDataSource),
		errors.Is(err, source.ErrNoSource):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
