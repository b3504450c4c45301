package repository

import (
	"context"

	"crypto_miner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RewardRepository struct {
	db *pgxpool.Pool
}

func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) Create(ctx context.Context, rw *domain.CryptoReward) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO rewards (user_id, wallet_address, amount, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rw.UserID, rw.WalletAddress, rw.Amount, rw.Status,
	).Scan(&rw.ID, &rw.CreatedAt)
}

func (r *RewardRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.CryptoReward, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, wallet_address, amount, status,
			COALESCE(transaction_id, ''), created_at, processed_at
		 FROM rewards
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRewards(rows)
}

func (r *RewardRepository) ListPending(ctx context.Context, limit int) ([]*domain.CryptoReward, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, wallet_address, amount, status,
			COALESCE(transaction_id, ''), created_at, processed_at
		 FROM rewards
		 WHERE status = $1
		 ORDER BY created_at
		 LIMIT $2`,
		domain.RewardPending, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRewards(rows)
}

func (r *RewardRepository) MarkCompleted(ctx context.Context, id, txID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rewards
		 SET status = $1, transaction_id = $2, processed_at = now()
		 WHERE id = $3 AND status = $4`,
		domain.RewardCompleted, txID, id, domain.RewardPending,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rewardRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRewards(rows rewardRows) ([]*domain.CryptoReward, error) {
	var res []*domain.CryptoReward
	for rows.Next() {
		var rw domain.CryptoReward
		if err := rows.Scan(
			&rw.ID,
			&rw.UserID,
			&rw.WalletAddress,
			&rw.Amount,
			&rw.Status,
			&rw.TransactionID,
			&rw.CreatedAt,
			&rw.ProcessedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &rw)
	}
	return res, rows.Err()
}
