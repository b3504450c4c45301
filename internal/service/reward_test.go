package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/repository"
)

type fakeRewards struct {
	rewards []*domain.CryptoReward
	markErr map[string]error
	nextID  int
}

func newFakeRewards() *fakeRewards {
	return &fakeRewards{markErr: make(map[string]error)}
}

func (f *fakeRewards) Create(_ context.Context, rw *domain.CryptoReward) error {
	f.nextID++
	rw.ID = fmt.Sprintf("rw%d", f.nextID)
	rw.CreatedAt = time.Now()
	f.rewards = append(f.rewards, rw)
	return nil
}

func (f *fakeRewards) ListByUser(_ context.Context, userID string, limit int) ([]*domain.CryptoReward, error) {
	var res []*domain.CryptoReward
	for _, rw := range f.rewards {
		if rw.UserID == userID && len(res) < limit {
			res = append(res, rw)
		}
	}
	return res, nil
}

func (f *fakeRewards) ListPending(_ context.Context, limit int) ([]*domain.CryptoReward, error) {
	var res []*domain.CryptoReward
	for _, rw := range f.rewards {
		if rw.Status == domain.RewardPending && len(res) < limit {
			res = append(res, rw)
		}
	}
	return res, nil
}

func (f *fakeRewards) MarkCompleted(_ context.Context, id, txID string) error {
	if err := f.markErr[id]; err != nil {
		return err
	}
	for _, rw := range f.rewards {
		if rw.ID == id && rw.Status == domain.RewardPending {
			rw.Status = domain.RewardCompleted
			rw.TransactionID = txID
			now := time.Now()
			rw.ProcessedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestRewardRecord(t *testing.T) {
	store := newFakeRewards()
	svc := NewRewardService(store, time.Hour)

	rw, err := svc.Record(context.Background(), "u1", "0xabc", 25)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rw.Status != domain.RewardPending {
		t.Fatalf("status = %s, want pending", rw.Status)
	}
	if rw.ID == "" {
		t.Fatalf("reward id not assigned")
	}

	history, err := svc.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != rw.ID {
		t.Fatalf("history = %+v, want the recorded reward", history)
	}
}

func TestProcessPendingStampsTransactions(t *testing.T) {
	store := newFakeRewards()
	svc := NewRewardService(store, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(ctx, "u1", "0xabc", float64(10+i)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	n, err := svc.ProcessPending(ctx)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if n != 3 {
		t.Fatalf("processed %d rewards, want 3", n)
	}
	for _, rw := range store.rewards {
		if rw.Status != domain.RewardCompleted {
			t.Fatalf("reward %s still %s", rw.ID, rw.Status)
		}
		if !strings.HasPrefix(rw.TransactionID, "tx_") || len(rw.TransactionID) != len("tx_")+24 {
			t.Fatalf("reward %s has malformed transaction id %q", rw.ID, rw.TransactionID)
		}
		if rw.ProcessedAt == nil {
			t.Fatalf("reward %s missing processed time", rw.ID)
		}
	}

	// nothing left to settle
	n, err = svc.ProcessPending(ctx)
	if err != nil || n != 0 {
		t.Fatalf("second pass processed %d (%v), want 0", n, err)
	}
}

func TestProcessPendingSkipsFailedMark(t *testing.T) {
	store := newFakeRewards()
	svc := NewRewardService(store, time.Hour)
	ctx := context.Background()

	ok, err := svc.Record(ctx, "u1", "0xabc", 10)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	stuck, err := svc.Record(ctx, "u1", "0xdef", 20)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	store.markErr[stuck.ID] = errors.New("db down")

	n, err := svc.ProcessPending(ctx)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if n != 1 {
		t.Fatalf("processed %d rewards, want 1", n)
	}
	if ok.Status != domain.RewardCompleted {
		t.Fatalf("healthy reward not completed")
	}
	if stuck.Status != domain.RewardPending {
		t.Fatalf("failed reward must stay pending for the next pass")
	}
}
