// Package ws streams settled accrual snapshots to connected sessions. It is
// the server-side counterpart of the client's mining timer: the browser only
// renders what the ticker sends, so a stalled tab never double counts.
package ws

import (
	"sync"
	"time"

	"crypto_miner/internal/service"
)

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	Sync     *service.SyncService
	Interval time.Duration
}

func NewHub(sync *service.SyncService, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = time.Second
	}
	return &Hub{
		clients:  make(map[*Client]struct{}),
		Sync:     sync,
		Interval: interval,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Count reports how many sessions are connected.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
