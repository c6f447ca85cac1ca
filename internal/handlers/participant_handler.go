package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"github.com/luckywheel/spin-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantHandler handles participant HTTP requests
type ParticipantHandler struct {
	participantService services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// CreateParticipant handles POST /participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.participantService.CreateParticipant(c.Request.Context(), &participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// GetParticipantByID handles GET /participants/:id
func (h *ParticipantHandler) GetParticipantByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	participant, err := h.participantService.GetParticipant(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve participant: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, participant)
}

// GetParticipantsByEvent handles GET /events/:id/participants
func (h *ParticipantHandler) GetParticipantsByEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	participants, err := h.participantService.GetParticipants(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve participants: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, participants)
}

// UpdateParticipant handles PUT /participants/:id
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participant.ID = id

	if err := h.participantService.UpdateParticipant(c.Request.Context(), &participant); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, participant)
}

// GetSpinHistory handles GET /participants/:id/history?page=1&limit=20
func (h *ParticipantHandler) GetSpinHistory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	history, err := h.participantService.GetSpinHistory(c.Request.Context(), id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spin history: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "history": history})
}
