package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teso/internal/domain"
	"teso/internal/repository"
)

// TripHandler handles HTTP requests for persisted trips.
type TripHandler struct {
	tripRepo repository.TripRepository
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripRepo repository.TripRepository) *TripHandler {
	return &TripHandler{tripRepo: tripRepo}
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Client         string  `json:"client"`
	Channel        string  `json:"channel"`
	Driver         string  `json:"driver"`
	Vehicle        string  `json:"vehicle"`
	Status         string  `json:"status"`
	Fare           float64 `json:"fare"`
	Toll           float64 `json:"toll"`
	CommissionRate float64 `json:"commission_rate"`
	Source         string  `json:"source,omitempty"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:             trip.ID,
		Date:           trip.Date.Format("2006-01-02T15:04:05Z07:00"),
		Client:         trip.Client,
		Channel:        string(trip.Channel),
		Driver:         trip.Driver,
		Vehicle:        trip.Vehicle,
		Status:         string(trip.Status),
		Fare:           trip.Fare,
		Toll:           trip.Toll,
		CommissionRate: trip.CommissionRate,
		Source:         trip.Source,
	}
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}

	c.JSON(http.StatusOK, response)
}
