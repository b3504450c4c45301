package domain

// LeaderboardEntry is the denormalized score record for one player, rewritten
// whole on every successful save. Score mirrors the last saved balance.
type LeaderboardEntry struct {
	UserID   string  `db:"user_id" json:"userId"`
	Username string  `db:"username" json:"username"`
	PhotoURL string  `db:"photo_url" json:"photoUrl,omitempty"`
	Score    float64 `db:"score" json:"score"`
	Rank     string  `db:"rank" json:"rank"`
}
