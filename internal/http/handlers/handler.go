package handlers

import (
	"crypto_miner/internal/config"
	"crypto_miner/internal/repository"
	"crypto_miner/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Sync      *service.SyncService
	Profiles  *repository.ProfileRepository
	Rewards   *service.RewardService
	Referrals *service.ReferralService
	Tokens    *service.TokenIssuer

	BotToken       string
	BotUsername    string
	AllowAnonymous bool
}

func NewHandler(
	sync *service.SyncService,
	profiles *repository.ProfileRepository,
	rewards *service.RewardService,
	referrals *service.ReferralService,
	tokens *service.TokenIssuer,
	cfg *config.Config,
) *Handler {
	return &Handler{
		Sync:           sync,
		Profiles:       profiles,
		Rewards:        rewards,
		Referrals:      referrals,
		Tokens:         tokens,
		BotToken:       cfg.BotToken,
		BotUsername:    cfg.BotUsername,
		AllowAnonymous: cfg.AllowAnonymous,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get("user_id")
	if !ok {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}
