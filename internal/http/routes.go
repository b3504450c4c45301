package http

import (
	"crypto_miner/internal/config"
	"crypto_miner/internal/http/handlers"
	"crypto_miner/internal/http/middleware"
	"crypto_miner/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint. All collaborators are constructed in
// main and injected; nothing here reaches for globals.
func RegisterRoutes(
	r *gin.Engine,
	h *handlers.Handler,
	health *handlers.HealthHandler,
	hub *ws.Hub,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
) {
	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	auth := middleware.JWT(h.Tokens)
	userRL := limiter.PerUser(cfg.UserRateLimit, cfg.UserRateWindow)

	api := r.Group("/api")
	api.Use(limiter.PerIP(cfg.APIRateLimit, cfg.APIRateWindow))

	api.POST("/auth", limiter.PerIP(cfg.AuthRateLimit, cfg.AuthRateWindow), h.Auth)

	// Game state
	api.GET("/state", auth, h.GetState)
	api.POST("/state", auth, userRL, h.SaveState)
	api.POST("/state/purchase", auth, userRL, h.PurchaseUpgrade)
	api.POST("/state/claim", auth, userRL, h.ClaimCoins)
	api.GET("/upgrades", h.ListUpgrades)

	// Profile
	api.GET("/profile", auth, h.MyProfile)
	api.POST("/profile/click", auth, userRL, h.RecordClicks)
	api.POST("/profile/playtime", auth, userRL, h.RecordPlayTime)

	// Leaderboard
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/leaderboard/rank", auth, h.GetMyRank)

	// Rewards
	api.POST("/rewards", auth, userRL, h.RecordReward)
	api.GET("/rewards", auth, h.RewardHistory)

	// Referrals
	api.POST("/referral/apply", auth, h.ApplyReferral)
	api.GET("/referral/code", auth, h.MyReferralCode)

	// Accrual ticker
	r.GET("/ws", h.WS(hub))
}
