package handlers

import (
	"errors"
	"net/http"

	"crypto_miner/internal/repository"
	"crypto_miner/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplyReferralRequest struct {
	ReferralCode string `json:"referralCode" binding:"required"`
}

// ApplyReferral credits both sides of a referral exactly once.
func (h *Handler) ApplyReferral(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ApplyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.Referrals.Apply(c.Request.Context(), userID, req.ReferralCode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Referral applied"})
	case errors.Is(err, service.ErrSelfReferral),
		errors.Is(err, service.ErrAlreadyReferred),
		errors.Is(err, service.ErrUnknownReferrer):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to apply referral"})
	}
}

// MyReferralCode returns the user's share code, the bot link carrying it and
// how many players joined through it.
func (h *Handler) MyReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	profile, err := h.Profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	count, err := h.Referrals.Count(ctx, userID)
	if err != nil {
		count = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      profile.ReferralCode,
		"link":      "https://t.me/" + h.BotUsername + "?start=" + profile.ReferralCode,
		"referrals": count,
	})
}
