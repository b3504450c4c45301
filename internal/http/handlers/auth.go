package handlers

import (
	"net/http"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/identity"
	"crypto_miner/internal/telegram"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	InitData    string `json:"init_data"`
	AnonymousID string `json:"anonymous_id"`
}

// Auth exchanges Telegram init_data (or an anonymous id, when allowed) for a
// session token. The resolved identity is the persistence key for everything
// else.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if len(req.InitData) > 4096 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "init_data too long"})
		return
	}

	env, profile, ok := h.resolveIdentity(c, &req)
	if !ok {
		return
	}

	if err := h.Profiles.Upsert(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		return
	}

	token, err := h.Tokens.Generate(env.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":            env.UserID,
			"username":      profile.Username,
			"photo_url":     profile.PhotoURL,
			"embedded":      env.Embedded,
			"referral_code": profile.ReferralCode,
		},
	})
}

func (h *Handler) resolveIdentity(c *gin.Context, req *AuthRequest) (*identity.HostEnvironment, *domain.UserProfile, bool) {
	if req.InitData != "" {
		values, valid := telegram.ValidateInitData(req.InitData, h.BotToken)
		if !valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or stale telegram data"})
			return nil, nil, false
		}

		tgUser, err := telegram.ParseUser(values)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user json"})
			return nil, nil, false
		}

		userID := tgUser.UserID()
		return &identity.HostEnvironment{Embedded: true, UserID: userID},
			&domain.UserProfile{
				UserID:       userID,
				Username:     tgUser.DisplayName(),
				PhotoURL:     tgUser.PhotoURL,
				HighestRank:  "Novice",
				ReferralCode: identity.NewReferralCode(userID),
			},
			true
	}

	if !h.AllowAnonymous {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "telegram init data required"})
		return nil, nil, false
	}

	userID := req.AnonymousID
	if userID == "" {
		userID = identity.NewAnonymousID()
	}
	if !identity.IsAnonymous(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anonymous id"})
		return nil, nil, false
	}

	return &identity.HostEnvironment{Embedded: false, UserID: userID},
		&domain.UserProfile{
			UserID:       userID,
			Username:     "Anonymous",
			HighestRank:  "Novice",
			ReferralCode: identity.NewReferralCode(userID),
		},
		true
}
