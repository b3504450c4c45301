package handlers

import (
	"net/http"
	"os"

	"crypto_miner/internal/logger"
	"crypto_miner/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the connection and streams accrual ticks for the session.
// The token rides in the query string because browsers cannot set headers on
// websocket dials.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		userID, err := h.Tokens.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(userID, conn, hub)
		go client.Run()
	}
}
