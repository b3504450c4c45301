package handlers

import (
	"errors"
	"net/http"
	"time"

	"crypto_miner/internal/game"
	"crypto_miner/internal/logger"

	"github.com/gin-gonic/gin"
)

// GetState returns the user's game state settled to now, creating and
// persisting a fresh one on first contact.
func (h *Handler) GetState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	st, err := h.Sync.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load state"})
		return
	}
	if st == nil {
		st = game.NewState(now)
		if err := h.Sync.Save(ctx, userID, st); err != nil {
			logger.Warn("failed to persist initial state", "user_id", userID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"state": game.Settle(st, now)})
}

// SaveState accepts the client's current state and persists it. A failed
// remote write is reported but never blocks play; the client keeps its copy
// and retries on the next save trigger.
func (h *Handler) SaveState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var st game.State
	if err := c.BindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if err := st.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state: " + err.Error()})
		return
	}

	err := h.Sync.Save(c.Request.Context(), userID, &st)
	c.JSON(http.StatusOK, gin.H{"saved": err == nil})
}

type PurchaseRequest struct {
	UpgradeID string `json:"upgradeId" binding:"required"`
}

// PurchaseUpgrade buys one level of an upgrade against the saved state.
func (h *Handler) PurchaseUpgrade(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	st, err := h.Sync.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load state"})
		return
	}
	if st == nil {
		st = game.NewState(time.Now())
	}

	next, msg, err := game.Purchase(st, req.UpgradeID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrUpgradeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	saveErr := h.Sync.Save(ctx, userID, next)
	c.JSON(http.StatusOK, gin.H{
		"state":   next,
		"message": msg,
		"saved":   saveErr == nil,
	})
}

// ClaimCoins settles accrued coins into the balance and re-evaluates rank.
func (h *Handler) ClaimCoins(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	st, err := h.Sync.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load state"})
		return
	}
	if st == nil {
		st = game.NewState(now)
	}

	claimed := game.Claim(game.Settle(st, now), now)

	saveErr := h.Sync.Save(ctx, userID, claimed)
	c.JSON(http.StatusOK, gin.H{
		"state": claimed,
		"saved": saveErr == nil,
	})
}

// ListUpgrades returns the static catalog.
func (h *Handler) ListUpgrades(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"upgrades": game.Catalog()})
}
