package handlers

import (
	"errors"
	"net/http"

	"crypto_miner/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type ClickRequest struct {
	Count int64 `json:"count"`
}

// RecordClicks bumps the click statistic. Clicks are cosmetic bookkeeping
// only; they never touch the balance server-side.
func (h *Handler) RecordClicks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Count < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	if err := h.Profiles.IncrementClicks(c.Request.Context(), userID, req.Count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record clicks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type PlayTimeRequest struct {
	Seconds int64 `json:"seconds" binding:"required,min=1"`
}

func (h *Handler) RecordPlayTime(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PlayTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.Profiles.AddPlayTime(c.Request.Context(), userID, req.Seconds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record play time"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
