package service

import (
	"context"
	"errors"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/logger"
	"crypto_miner/internal/repository"
)

// Referral bonuses in coins.
const (
	ReferrerBonus = 500
	ReferredBonus = 200
)

var (
	ErrSelfReferral    = errors.New("cannot refer yourself")
	ErrAlreadyReferred = errors.New("referral already processed")
	ErrUnknownReferrer = errors.New("invalid referral code")
)

// ReferralStore is the slice of the referral repository the service needs.
type ReferralStore interface {
	Exists(ctx context.Context, userID, referrerID string) (bool, error)
	Create(ctx context.Context, userID, referrerID string) error
	CountByReferrer(ctx context.Context, referrerID string) (int64, error)
}

// ReferralProfiles resolves referral codes and pins the referrer on a profile.
type ReferralProfiles interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.UserProfile, error)
	SetReferredBy(ctx context.Context, userID, referrerID string) error
}

type ReferralService struct {
	referrals ReferralStore
	profiles  ReferralProfiles
	sync      *SyncService
}

func NewReferralService(referrals ReferralStore, profiles ReferralProfiles, sync *SyncService) *ReferralService {
	return &ReferralService{referrals: referrals, profiles: profiles, sync: sync}
}

// Apply credits both sides of a referral exactly once. The referred user gets
// ReferredBonus coins, the owner of the code gets ReferrerBonus. Bonuses only
// raise balances; rank still waits for the next claim.
func (s *ReferralService) Apply(ctx context.Context, userID, referralCode string) error {
	referrer, err := s.profiles.GetByReferralCode(ctx, referralCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownReferrer
		}
		return err
	}
	if referrer.UserID == userID {
		return ErrSelfReferral
	}

	if p, err := s.profiles.Get(ctx, userID); err == nil && p.ReferredBy != "" {
		return ErrAlreadyReferred
	}
	done, err := s.referrals.Exists(ctx, userID, referrer.UserID)
	if err != nil {
		return err
	}
	if done {
		return ErrAlreadyReferred
	}

	// the insert is the authoritative idempotency check: two sessions racing
	// past Exists collapse to one credit here
	if err := s.referrals.Create(ctx, userID, referrer.UserID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrAlreadyReferred
		}
		return err
	}
	if err := s.profiles.SetReferredBy(ctx, userID, referrer.UserID); err != nil {
		logger.Warn("failed to pin referrer on profile", "user_id", userID, "error", err)
	}

	s.credit(ctx, referrer.UserID, ReferrerBonus)
	s.credit(ctx, userID, ReferredBonus)
	return nil
}

// Count returns how many users joined through this referrer.
func (s *ReferralService) Count(ctx context.Context, referrerID string) (int64, error) {
	return s.referrals.CountByReferrer(ctx, referrerID)
}

// credit adds coins to a user's saved balance. Users with no saved state yet
// are skipped; their bonus is forfeited rather than creating a ghost state.
func (s *ReferralService) credit(ctx context.Context, userID string, amount float64) {
	st, err := s.sync.Load(ctx, userID)
	if err != nil || st == nil {
		logger.Warn("skipping referral credit, no saved state", "user_id", userID)
		return
	}

	// rank intentionally stays as-is until the next claim
	next := st.Clone()
	next.Balance += amount
	if err := s.sync.Save(ctx, userID, next); err != nil {
		logger.Warn("failed to save referral credit", "user_id", userID, "error", err)
	}
}
