package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/game"
	"crypto_miner/internal/repository"
)

type fakeStore struct {
	states  map[string]*game.State
	saveErr error
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]*game.State)}
}

func (f *fakeStore) Save(_ context.Context, userID string, st *game.State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[userID] = st.Clone()
	return nil
}

func (f *fakeStore) Load(_ context.Context, userID string) (*game.State, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	st, ok := f.states[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return st.Clone(), nil
}

type fakeProfiles struct {
	profiles map[string]*domain.UserProfile
	coins    map[string]float64
	ranks    map[string]string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		profiles: make(map[string]*domain.UserProfile),
		coins:    make(map[string]float64),
		ranks:    make(map[string]string),
	}
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) UpdateProgress(_ context.Context, userID string, coins float64, rank string) error {
	f.coins[userID] = coins
	f.ranks[userID] = rank
	return nil
}

type fakeBoard struct {
	entries map[string]*domain.LeaderboardEntry
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{entries: make(map[string]*domain.LeaderboardEntry)}
}

func (f *fakeBoard) Upsert(_ context.Context, e *domain.LeaderboardEntry) error {
	f.entries[e.UserID] = e
	return nil
}

func (f *fakeBoard) Top(_ context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	var res []*domain.LeaderboardEntry
	for _, e := range f.entries {
		res = append(res, e)
	}
	return res, nil
}

func (f *fakeBoard) Score(_ context.Context, userID string) (float64, error) {
	e, ok := f.entries[userID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return e.Score, nil
}

func (f *fakeBoard) CountAbove(_ context.Context, score float64) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.Score > score {
			n++
		}
	}
	return n, nil
}

func newTestSync() (*SyncService, *fakeStore, *fakeStore, *fakeProfiles, *fakeBoard) {
	store := newFakeStore()
	cacheStore := newFakeStore()
	profiles := newFakeProfiles()
	board := newFakeBoard()
	return NewSyncService(store, cacheAdapter{cacheStore}, profiles, board), store, cacheStore, profiles, board
}

type cacheAdapter struct{ s *fakeStore }

func (c cacheAdapter) Put(ctx context.Context, userID string, st *game.State) error {
	return c.s.Save(ctx, userID, st)
}

func (c cacheAdapter) Get(ctx context.Context, userID string) (*game.State, error) {
	return c.s.Load(ctx, userID)
}

func TestSaveUpdatesReadModels(t *testing.T) {
	sync, store, cacheStore, profiles, board := newTestSync()
	profiles.profiles["u1"] = &domain.UserProfile{UserID: "u1", Username: "miner", PhotoURL: "p.jpg"}

	st := game.NewState(time.Now())
	st.Balance = 1500
	st.Rank = game.RankGold

	if err := sync.Save(context.Background(), "u1", st); err != nil {
		t.Fatalf("save: %v", err)
	}

	if store.states["u1"] == nil || cacheStore.states["u1"] == nil {
		t.Fatalf("state not written to both tiers")
	}
	if profiles.coins["u1"] != 1500 || profiles.ranks["u1"] != game.RankGold {
		t.Fatalf("profile summary not refreshed")
	}
	e := board.entries["u1"]
	if e == nil || e.Score != 1500 || e.Rank != game.RankGold || e.Username != "miner" {
		t.Fatalf("leaderboard entry wrong: %+v", e)
	}
}

func TestSaveRemoteFailureStillCaches(t *testing.T) {
	sync, store, cacheStore, _, board := newTestSync()
	store.saveErr = errors.New("remote down")

	st := game.NewState(time.Now())
	st.Balance = 10

	err := sync.Save(context.Background(), "u1", st)
	if err == nil {
		t.Fatalf("expected remote error to surface")
	}
	if cacheStore.states["u1"] == nil {
		t.Fatalf("cache not written on remote failure")
	}
	if len(board.entries) != 0 {
		t.Fatalf("read models must not update on failed remote save")
	}
}

func TestLoadPrefersRemote(t *testing.T) {
	sync, store, cacheStore, _, _ := newTestSync()

	remote := game.NewState(time.Now())
	remote.Balance = 100
	store.states["u1"] = remote

	stale := game.NewState(time.Now())
	stale.Balance = 5
	cacheStore.states["u1"] = stale

	st, err := sync.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Balance != 100 {
		t.Fatalf("loaded balance %v, want remote copy (100)", st.Balance)
	}
}

func TestLoadFallsBackToCache(t *testing.T) {
	sync, store, cacheStore, _, _ := newTestSync()
	store.loadErr = errors.New("remote down")

	cached := game.NewState(time.Now())
	cached.Balance = 7
	cacheStore.states["u1"] = cached

	st, err := sync.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st == nil || st.Balance != 7 {
		t.Fatalf("expected cached copy, got %+v", st)
	}
}

func TestLoadNothingSaved(t *testing.T) {
	sync, _, _, _, _ := newTestSync()

	st, err := sync.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil state, got %+v", st)
	}
}

func TestLoadFailsClosedOnInvalidDocument(t *testing.T) {
	sync, store, _, _, _ := newTestSync()

	broken := &game.State{Balance: -5}
	store.states["u1"] = broken

	st, err := sync.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != nil {
		t.Fatalf("invalid document must read as no saved state, got %+v", st)
	}
}

func TestRankPosition(t *testing.T) {
	sync, _, _, _, board := newTestSync()
	board.entries["a"] = &domain.LeaderboardEntry{UserID: "a", Score: 100}
	board.entries["b"] = &domain.LeaderboardEntry{UserID: "b", Score: 250}
	board.entries["c"] = &domain.LeaderboardEntry{UserID: "c", Score: 50}

	pos, err := sync.RankPosition(context.Background(), "a")
	if err != nil {
		t.Fatalf("rank position: %v", err)
	}
	if pos != 2 {
		t.Fatalf("position = %d, want 2", pos)
	}

	pos, err = sync.RankPosition(context.Background(), "b")
	if err != nil || pos != 1 {
		t.Fatalf("top position = %d (%v), want 1", pos, err)
	}

	pos, err = sync.RankPosition(context.Background(), "missing")
	if err != nil {
		t.Fatalf("rank position: %v", err)
	}
	if pos != -1 {
		t.Fatalf("position without score = %d, want -1", pos)
	}
}
