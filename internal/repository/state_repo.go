package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"crypto_miner/internal/game"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GameStateRepository stores one serialized game state document per user.
// The updated_at column is server-assigned and never leaves this layer.
type GameStateRepository struct {
	db *pgxpool.Pool
}

func NewGameStateRepository(db *pgxpool.Pool) *GameStateRepository {
	return &GameStateRepository{db: db}
}

func (r *GameStateRepository) Save(ctx context.Context, userID string, st *game.State) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO game_states (user_id, doc, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		userID, doc,
	)
	return err
}

func (r *GameStateRepository) Load(ctx context.Context, userID string) (*game.State, error) {
	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM game_states WHERE user_id = $1`,
		userID,
	).Scan(&doc)
	if err != nil {
		return nil, mapNoRows(err)
	}

	var st game.State
	if err := json.Unmarshal(doc, &st); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}
	return &st, nil
}
