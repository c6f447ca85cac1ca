package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"github.com/luckywheel/spin-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardHandler handles reward and golden hour HTTP requests
type RewardHandler struct {
	rewardService services.RewardService
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(rewardService services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// CreateReward handles POST /rewards
func (h *RewardHandler) CreateReward(c *gin.Context) {
	var reward models.Reward
	if err := c.ShouldBindJSON(&reward); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rewardService.CreateReward(c.Request.Context(), &reward); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reward)
}

// GetRewardByID handles GET /rewards/:id
func (h *RewardHandler) GetRewardByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	reward, err := h.rewardService.GetReward(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reward: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reward)
}

// GetRewardsByLocation handles GET /locations/:id/rewards
func (h *RewardHandler) GetRewardsByLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	rewards, err := h.rewardService.GetRewards(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rewards: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// UpdateReward handles PUT /rewards/:id
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var reward models.Reward
	if err := c.ShouldBindJSON(&reward); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reward.ID = id

	if err := h.rewardService.UpdateReward(c.Request.Context(), &reward); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reward)
}

// CreateGoldenHour handles POST /rewards/:id/golden-hours
func (h *RewardHandler) CreateGoldenHour(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var goldenHour models.GoldenHour
	if err := c.ShouldBindJSON(&goldenHour); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goldenHour.RewardID = rewardID

	if err := h.rewardService.CreateGoldenHour(c.Request.Context(), &goldenHour); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goldenHour)
}

// GetGoldenHours handles GET /rewards/:id/golden-hours
func (h *RewardHandler) GetGoldenHours(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	goldenHours, err := h.rewardService.GetGoldenHours(c.Request.Context(), rewardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve golden hours: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, goldenHours)
}

// SweepExpired handles POST /maintenance/sweep-expired
func (h *RewardHandler) SweepExpired(c *gin.Context) {
	expired, err := h.rewardService.SweepExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep expired documents: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired})
}
