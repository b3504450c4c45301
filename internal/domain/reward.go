package domain

import "time"

// RewardStatus tracks a crypto reward through its lifecycle.
type RewardStatus string

const (
	RewardPending   RewardStatus = "pending"
	RewardCompleted RewardStatus = "completed"
	RewardFailed    RewardStatus = "failed"
)

// CryptoReward is a requested payout to an external wallet. Settlement is
// simulated: a background processor stamps pending rewards with a fake
// transaction id.
type CryptoReward struct {
	ID            string       `db:"id" json:"id"`
	UserID        string       `db:"user_id" json:"userId"`
	WalletAddress string       `db:"wallet_address" json:"walletAddress"`
	Amount        float64      `db:"amount" json:"amount"`
	Status        RewardStatus `db:"status" json:"status"`
	TransactionID string       `db:"transaction_id" json:"transactionId,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	ProcessedAt   *time.Time   `db:"processed_at" json:"processedAt,omitempty"`
}
