package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/game"
	"crypto_miner/internal/repository"
)

type fakeReferrals struct {
	pairs map[string]bool

	// staleExists makes Exists report false even for recorded pairs, the way
	// a second session sees the world before the first one's insert lands
	staleExists bool
}

func newFakeReferrals() *fakeReferrals {
	return &fakeReferrals{pairs: make(map[string]bool)}
}

func (f *fakeReferrals) Exists(_ context.Context, userID, referrerID string) (bool, error) {
	if f.staleExists {
		return false, nil
	}
	return f.pairs[userID+"/"+referrerID], nil
}

func (f *fakeReferrals) Create(_ context.Context, userID, referrerID string) error {
	key := userID + "/" + referrerID
	if f.pairs[key] {
		return repository.ErrAlreadyExists
	}
	f.pairs[key] = true
	return nil
}

func (f *fakeReferrals) CountByReferrer(_ context.Context, referrerID string) (int64, error) {
	var n int64
	for pair := range f.pairs {
		if strings.HasSuffix(pair, "/"+referrerID) {
			n++
		}
	}
	return n, nil
}

type referralProfiles struct {
	*fakeProfiles
	codes map[string]string // code -> userID
}

func (f *referralProfiles) GetByReferralCode(ctx context.Context, code string) (*domain.UserProfile, error) {
	userID, ok := f.codes[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.Get(ctx, userID)
}

func (f *referralProfiles) SetReferredBy(_ context.Context, userID, referrerID string) error {
	if p, ok := f.profiles[userID]; ok && p.ReferredBy == "" {
		p.ReferredBy = referrerID
	}
	return nil
}

func newReferralFixture() (*ReferralService, *fakeStore, *referralProfiles, *fakeReferrals) {
	store := newFakeStore()
	cacheStore := newFakeStore()
	profiles := &referralProfiles{fakeProfiles: newFakeProfiles(), codes: make(map[string]string)}
	board := newFakeBoard()
	sync := NewSyncService(store, cacheAdapter{cacheStore}, profiles, board)

	referrals := newFakeReferrals()
	return NewReferralService(referrals, profiles, sync), store, profiles, referrals
}

func seedUser(store *fakeStore, profiles *referralProfiles, userID, code string, balance float64) {
	profiles.profiles[userID] = &domain.UserProfile{UserID: userID, Username: userID, ReferralCode: code}
	if code != "" {
		profiles.codes[code] = userID
	}
	st := game.NewState(time.Now())
	st.Balance = balance
	store.states[userID] = st
}

func TestReferralApply(t *testing.T) {
	svc, store, profiles, _ := newReferralFixture()
	seedUser(store, profiles, "referrer", "REF123", 1000)
	seedUser(store, profiles, "newbie", "NEW456", 0)

	if err := svc.Apply(context.Background(), "newbie", "REF123"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := store.states["referrer"].Balance; got != 1000+ReferrerBonus {
		t.Fatalf("referrer balance = %v, want %v", got, 1000+ReferrerBonus)
	}
	if got := store.states["newbie"].Balance; got != ReferredBonus {
		t.Fatalf("referred balance = %v, want %v", got, float64(ReferredBonus))
	}
	if profiles.profiles["newbie"].ReferredBy != "referrer" {
		t.Fatalf("referredBy not set")
	}
	// bonus does not re-evaluate rank before the next claim
	if store.states["referrer"].Rank != game.RankBronze {
		t.Fatalf("rank changed by referral credit")
	}
}

func TestReferralApplyIdempotent(t *testing.T) {
	svc, store, profiles, _ := newReferralFixture()
	seedUser(store, profiles, "referrer", "REF123", 0)
	seedUser(store, profiles, "newbie", "NEW456", 0)

	if err := svc.Apply(context.Background(), "newbie", "REF123"); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := svc.Apply(context.Background(), "newbie", "REF123"); err != ErrAlreadyReferred {
		t.Fatalf("second apply: got %v, want ErrAlreadyReferred", err)
	}
	if got := store.states["referrer"].Balance; got != ReferrerBonus {
		t.Fatalf("referrer credited twice: balance %v", got)
	}
}

func TestReferralApplyRacingSessions(t *testing.T) {
	svc, store, profiles, referrals := newReferralFixture()
	seedUser(store, profiles, "referrer", "REF123", 0)
	seedUser(store, profiles, "newbie", "NEW456", 0)

	if err := svc.Apply(context.Background(), "newbie", "REF123"); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	// a second session that raced past both pre-checks still collapses into
	// the existing row at insert time
	referrals.staleExists = true
	profiles.profiles["newbie"].ReferredBy = ""
	if err := svc.Apply(context.Background(), "newbie", "REF123"); err != ErrAlreadyReferred {
		t.Fatalf("racing apply: got %v, want ErrAlreadyReferred", err)
	}
	if got := store.states["referrer"].Balance; got != ReferrerBonus {
		t.Fatalf("referrer credited twice: balance %v", got)
	}
	if got := store.states["newbie"].Balance; got != ReferredBonus {
		t.Fatalf("referred credited twice: balance %v", got)
	}
}

func TestReferralApplySelf(t *testing.T) {
	svc, store, profiles, _ := newReferralFixture()
	seedUser(store, profiles, "solo", "SOLO42", 0)

	if err := svc.Apply(context.Background(), "solo", "SOLO42"); err != ErrSelfReferral {
		t.Fatalf("got %v, want ErrSelfReferral", err)
	}
}

func TestReferralApplyUnknownCode(t *testing.T) {
	svc, _, _, _ := newReferralFixture()

	if err := svc.Apply(context.Background(), "newbie", "NOPE"); err != ErrUnknownReferrer {
		t.Fatalf("got %v, want ErrUnknownReferrer", err)
	}
}
