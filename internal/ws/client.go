package ws

import (
	"context"
	"encoding/json"
	"time"

	"crypto_miner/internal/game"
	"crypto_miner/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// TickPayload is one accrual snapshot pushed to the client.
type TickPayload struct {
	Type             string  `json:"type"`
	Balance          float64 `json:"balance"`
	MiningRate       float64 `json:"miningRate"`
	AccumulatedCoins float64 `json:"accumulatedCoins"`
	Rank             string  `json:"rank"`
}

type Client struct {
	UserID string
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	done   chan struct{}
}

func NewClient(userID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, 16),
		hub:    hub,
		done:   make(chan struct{}),
	}
}

// Run pumps snapshots until the connection drops.
func (c *Client) Run() {
	c.hub.register(c)
	defer c.hub.unregister(c)

	go c.writePump()
	go c.tickLoop()
	c.readPump()
}

func (c *Client) readPump() {
	defer close(c.done)
	defer c.conn.Close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// inbound messages are ignored, the socket is push-only
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) tickLoop() {
	ticker := time.NewTicker(c.hub.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			msg, err := c.snapshot(time.Now())
			if err != nil {
				logger.Debug("ws snapshot skipped", "user_id", c.UserID, "error", err)
				continue
			}
			if msg == nil {
				continue
			}
			select {
			case c.send <- msg:
			default:
				// slow consumer, drop the tick
			}
		}
	}
}

func (c *Client) snapshot(now time.Time) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()

	st, err := c.hub.Sync.Load(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	return marshalTick(st, now)
}

func marshalTick(st *game.State, now time.Time) ([]byte, error) {
	settled := game.Settle(st, now)
	return json.Marshal(TickPayload{
		Type:             "tick",
		Balance:          settled.Balance,
		MiningRate:       settled.MiningRate,
		AccumulatedCoins: settled.AccumulatedCoins,
		Rank:             settled.Rank,
	})
}
