// Package cache keeps a fallback copy of each game state in Redis, mirroring
// every save so play can continue through a database outage.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crypto_miner/internal/game"
	"crypto_miner/internal/repository"

	redis "github.com/redis/go-redis/v9"
)

type StateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a cache over rdb. A nil client yields a cache that misses on
// every read and drops every write, so the caller degrades to remote-only.
func New(rdb *redis.Client, ttl time.Duration) *StateCache {
	return &StateCache{rdb: rdb, ttl: ttl}
}

func key(userID string) string {
	return "gamestate:" + userID
}

func (c *StateCache) Put(ctx context.Context, userID string, st *game.State) error {
	if c.rdb == nil {
		return nil
	}

	doc, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(userID), doc, c.ttl).Err()
}

func (c *StateCache) Get(ctx context.Context, userID string) (*game.State, error) {
	if c.rdb == nil {
		return nil, repository.ErrNotFound
	}

	doc, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var st game.State
	if err := json.Unmarshal(doc, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
