package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/logger"
)

// RewardStore is the slice of the reward repository the service needs.
type RewardStore interface {
	Create(ctx context.Context, rw *domain.CryptoReward) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.CryptoReward, error)
	ListPending(ctx context.Context, limit int) ([]*domain.CryptoReward, error)
	MarkCompleted(ctx context.Context, id, txID string) error
}

// RewardService records wallet payout requests and settles them in the
// background. Settlement is simulated: no blockchain client is wired in, a
// pending reward just gets a generated transaction id after one interval.
type RewardService struct {
	rewards  RewardStore
	interval time.Duration
}

func NewRewardService(rewards RewardStore, interval time.Duration) *RewardService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RewardService{rewards: rewards, interval: interval}
}

// Record books a pending reward and returns it with its id, which doubles as
// the tracking id handed back to the client.
func (s *RewardService) Record(ctx context.Context, userID, walletAddress string, amount float64) (*domain.CryptoReward, error) {
	rw := &domain.CryptoReward{
		UserID:        userID,
		WalletAddress: walletAddress,
		Amount:        amount,
		Status:        domain.RewardPending,
	}
	if err := s.rewards.Create(ctx, rw); err != nil {
		return nil, err
	}
	return rw, nil
}

func (s *RewardService) History(ctx context.Context, userID string) ([]*domain.CryptoReward, error) {
	return s.rewards.ListByUser(ctx, userID, 50)
}

// ProcessPending settles one batch of pending rewards and returns how many
// were completed.
func (s *RewardService) ProcessPending(ctx context.Context) (int, error) {
	pending, err := s.rewards.ListPending(ctx, 100)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, rw := range pending {
		txID := "tx_" + randomHex(12)
		if err := s.rewards.MarkCompleted(ctx, rw.ID, txID); err != nil {
			logger.Warn("failed to complete reward", "reward_id", rw.ID, "error", err)
			continue
		}
		done++
	}
	return done, nil
}

// Run drives ProcessPending on a fixed interval until ctx is cancelled.
func (s *RewardService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.ProcessPending(ctx)
			if err != nil {
				logger.Error("reward processing failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("processed pending rewards", "count", n)
			}
		}
	}
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
