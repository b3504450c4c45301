package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top entries by score.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	top, err := h.Sync.Top(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}

// GetMyRank returns the user's position by last saved score, -1 when the user
// has never saved a score.
func (h *Handler) GetMyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	position, err := h.Sync.RankPosition(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": position})
}
