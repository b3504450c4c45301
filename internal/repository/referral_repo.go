package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Exists(ctx context.Context, userID, referrerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM referrals WHERE user_id = $1 AND referrer_id = $2)`,
		userID, referrerID,
	).Scan(&exists)
	return exists, err
}

// Create inserts the (user, referrer) pair. ErrAlreadyExists reports a pair
// that was already recorded, so the insert doubles as the idempotency check
// even when two sessions race past a prior Exists call.
func (r *ReferralRepository) Create(ctx context.Context, userID, referrerID string) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO referrals (user_id, referrer_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, referrer_id) DO NOTHING`,
		userID, referrerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *ReferralRepository) CountByReferrer(ctx context.Context, referrerID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`,
		referrerID,
	).Scan(&n)
	return n, err
}
