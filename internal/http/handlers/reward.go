package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RewardRequest struct {
	WalletAddress string  `json:"walletAddress" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

// RecordReward books a pending wallet payout. Settlement happens later in the
// background processor; the client gets the tracking id right away.
func (h *Handler) RecordReward(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reward, err := h.Rewards.Record(c.Request.Context(), userID, req.WalletAddress, req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": reward.Status,
		"txId":   reward.ID,
	})
}

// RewardHistory lists the user's payout requests, newest first.
func (h *Handler) RewardHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rewards, err := h.Rewards.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}
