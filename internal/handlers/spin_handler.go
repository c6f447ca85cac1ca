package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"github.com/luckywheel/spin-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpinHandler handles spin-related HTTP requests
type SpinHandler struct {
	spinService services.SpinService
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(spinService services.SpinService) *SpinHandler {
	return &SpinHandler{
		spinService: spinService,
	}
}

// SpinRequest is the payload for POST /spins
type SpinRequest struct {
	EventID       string `json:"eventId" binding:"required"`
	LocationID    string `json:"locationId" binding:"required"`
	ParticipantID string `json:"participantId" binding:"required"`
}

// Spin handles POST /spins. Denials and losses are ordinary 200 responses;
// only exhausted write contention surfaces as 409 and a failure to record an
// already-committed outcome as 500 with the reference ID for reconciliation.
func (h *SpinHandler) Spin(c *gin.Context) {
	var request SpinRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID, err := primitive.ObjectIDFromHex(request.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return
	}
	locationID, err := primitive.ObjectIDFromHex(request.LocationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID format"})
		return
	}
	participantID, err := primitive.ObjectIDFromHex(request.ParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID format"})
		return
	}

	outcome, err := h.spinService.ResolveSpin(c.Request.Context(), eventID, locationID, participantID, time.Time{})
	if err != nil {
		var recErr *services.RecordingError
		switch {
		case errors.As(err, &recErr):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       "Spin committed but could not be recorded",
				"referenceId": recErr.ReferenceID,
			})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event, location or participant not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve spin: " + err.Error()})
		}
		return
	}

	if outcome.Status == models.SpinConflictExhausted {
		c.JSON(http.StatusConflict, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
