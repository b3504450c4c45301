package domain

import "time"

// UserProfile is the denormalized per-user summary document. Progression
// fields (TotalCoinsEarned, HighestRank) are read models refreshed on every
// successful game state save; they are caches, not the source of truth.
type UserProfile struct {
	UserID                 string    `db:"user_id" json:"userId"`
	Username               string    `db:"username" json:"username"`
	PhotoURL               string    `db:"photo_url" json:"photoUrl,omitempty"`
	CreatedAt              time.Time `db:"created_at" json:"createdAt"`
	LastActive             time.Time `db:"last_active" json:"lastActive"`
	TotalCoinsEarned       float64   `db:"total_coins_earned" json:"totalCoinsEarned"`
	TotalClicks            int64     `db:"total_clicks" json:"totalClicks"`
	TotalTimePlayedSeconds int64     `db:"total_time_played_seconds" json:"totalTimePlayedSeconds"`
	HighestRank            string    `db:"highest_rank" json:"highestRank"`
	ReferralCode           string    `db:"referral_code" json:"referralCode"`
	ReferredBy             string    `db:"referred_by" json:"referredBy,omitempty"`
}
