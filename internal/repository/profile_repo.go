package repository

import (
	"context"

	"crypto_miner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates the profile on first contact and refreshes the identity
// fields plus last_active on every later one. Progression counters are not
// touched here.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO user_profiles
			(user_id, username, photo_url, highest_rank, referral_code, created_at, last_active)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			photo_url = EXCLUDED.photo_url,
			last_active = now()
		 RETURNING referral_code, created_at, last_active`,
		p.UserID, p.Username, p.PhotoURL, p.HighestRank, p.ReferralCode,
	).Scan(&p.ReferralCode, &p.CreatedAt, &p.LastActive)
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, username, COALESCE(photo_url, ''), created_at, last_active,
			total_coins_earned, total_clicks, total_time_played_seconds,
			highest_rank, referral_code, COALESCE(referred_by, '')
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p domain.UserProfile
	if err := row.Scan(
		&p.UserID,
		&p.Username,
		&p.PhotoURL,
		&p.CreatedAt,
		&p.LastActive,
		&p.TotalCoinsEarned,
		&p.TotalClicks,
		&p.TotalTimePlayedSeconds,
		&p.HighestRank,
		&p.ReferralCode,
		&p.ReferredBy,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &p, nil
}

func (r *ProfileRepository) GetByReferralCode(ctx context.Context, code string) (*domain.UserProfile, error) {
	var userID string
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM user_profiles WHERE referral_code = $1`,
		code,
	).Scan(&userID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return r.Get(ctx, userID)
}

// UpdateProgress refreshes the denormalized progression summary after a save.
func (r *ProfileRepository) UpdateProgress(ctx context.Context, userID string, totalCoins float64, highestRank string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_profiles
		 SET total_coins_earned = $1, highest_rank = $2, last_active = now()
		 WHERE user_id = $3`,
		totalCoins, highestRank, userID,
	)
	return err
}

func (r *ProfileRepository) IncrementClicks(ctx context.Context, userID string, n int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_profiles SET total_clicks = total_clicks + $1 WHERE user_id = $2`,
		n, userID,
	)
	return err
}

func (r *ProfileRepository) AddPlayTime(ctx context.Context, userID string, seconds int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_profiles
		 SET total_time_played_seconds = total_time_played_seconds + $1
		 WHERE user_id = $2`,
		seconds, userID,
	)
	return err
}

func (r *ProfileRepository) SetReferredBy(ctx context.Context, userID, referrerID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_profiles SET referred_by = $1 WHERE user_id = $2 AND referred_by IS NULL`,
		referrerID, userID,
	)
	return err
}
