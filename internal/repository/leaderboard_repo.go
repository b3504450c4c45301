package repository

import (
	"context"

	"crypto_miner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LeaderboardRepository struct {
	db *pgxpool.Pool
}

func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Upsert rewrites the user's entry whole; the leaderboard is a read model,
// not a ledger.
func (r *LeaderboardRepository) Upsert(ctx context.Context, e *domain.LeaderboardEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leaderboard (user_id, username, photo_url, score, rank)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			photo_url = EXCLUDED.photo_url,
			score = EXCLUDED.score,
			rank = EXCLUDED.rank`,
		e.UserID, e.Username, e.PhotoURL, e.Score, e.Rank,
	)
	return err
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, username, COALESCE(photo_url, ''), score, rank
		 FROM leaderboard
		 ORDER BY score DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.PhotoURL, &e.Score, &e.Rank); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}

func (r *LeaderboardRepository) Score(ctx context.Context, userID string) (float64, error) {
	var score float64
	err := r.db.QueryRow(ctx,
		`SELECT score FROM leaderboard WHERE user_id = $1`,
		userID,
	).Scan(&score)
	if err != nil {
		return 0, mapNoRows(err)
	}
	return score, nil
}

func (r *LeaderboardRepository) CountAbove(ctx context.Context, score float64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM leaderboard WHERE score > $1`,
		score,
	).Scan(&n)
	return n, err
}
