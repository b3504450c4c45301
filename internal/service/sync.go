package service

import (
	"context"
	"errors"

	"crypto_miner/internal/domain"
	"crypto_miner/internal/game"
	"crypto_miner/internal/logger"
	"crypto_miner/internal/repository"
)

// StateStore is the remote document store of record.
type StateStore interface {
	Save(ctx context.Context, userID string, st *game.State) error
	Load(ctx context.Context, userID string) (*game.State, error)
}

// StateCache is the local fallback tier mirrored on every save.
type StateCache interface {
	Put(ctx context.Context, userID string, st *game.State) error
	Get(ctx context.Context, userID string) (*game.State, error)
}

// ProfileStore is the slice of the profile repository the sync layer needs.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProgress(ctx context.Context, userID string, totalCoins float64, highestRank string) error
}

// LeaderboardStore is the denormalized score read model.
type LeaderboardStore interface {
	Upsert(ctx context.Context, e *domain.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
	Score(ctx context.Context, userID string) (float64, error)
	CountAbove(ctx context.Context, score float64) (int64, error)
}

// SyncService binds the remote store, the fallback cache and the two
// denormalized read models behind one save/load contract. Precedence on load
// is fixed: remote wins, cache is a fallback, conflicts are last-write-wins
// at the document level.
type SyncService struct {
	store    StateStore
	cache    StateCache
	profiles ProfileStore
	board    LeaderboardStore
}

func NewSyncService(store StateStore, cache StateCache, profiles ProfileStore, board LeaderboardStore) *SyncService {
	return &SyncService{
		store:    store,
		cache:    cache,
		profiles: profiles,
		board:    board,
	}
}

// Save writes the state to the remote store and mirrors it to the cache.
// A remote failure still leaves the cache fresh and is reported to the caller,
// who may retry on the next save trigger; nothing is queued or rolled back.
// The profile summary and leaderboard entry are refreshed best-effort after a
// successful remote write; they are caches and may go stale on a crash.
func (s *SyncService) Save(ctx context.Context, userID string, st *game.State) error {
	remoteErr := s.store.Save(ctx, userID, st)

	if err := s.cache.Put(ctx, userID, st); err != nil {
		logger.Warn("failed to mirror game state to cache", "user_id", userID, "error", err)
	}

	if remoteErr != nil {
		StateSaves.WithLabelValues("remote_failed").Inc()
		logger.Warn("remote save failed, cached copy kept", "user_id", userID, "error", remoteErr)
		return remoteErr
	}
	StateSaves.WithLabelValues("ok").Inc()

	s.updateReadModels(ctx, userID, st)
	return nil
}

func (s *SyncService) updateReadModels(ctx context.Context, userID string, st *game.State) {
	if err := s.profiles.UpdateProgress(ctx, userID, st.Balance, st.Rank); err != nil {
		logger.Warn("failed to update profile summary", "user_id", userID, "error", err)
	}

	entry := &domain.LeaderboardEntry{
		UserID:   userID,
		Username: "Anonymous",
		Score:    st.Balance,
		Rank:     st.Rank,
	}
	if p, err := s.profiles.Get(ctx, userID); err == nil {
		entry.Username = p.Username
		entry.PhotoURL = p.PhotoURL
	}
	if err := s.board.Upsert(ctx, entry); err != nil {
		logger.Warn("failed to update leaderboard entry", "user_id", userID, "error", err)
	}
}

// Load returns the user's state, preferring the remote document and falling
// back to the cached copy. A document that fails validation is treated as no
// saved state. (nil, nil) means the caller should initialize defaults.
func (s *SyncService) Load(ctx context.Context, userID string) (*game.State, error) {
	st, err := s.store.Load(ctx, userID)
	switch {
	case err == nil:
		vErr := st.Validate()
		if vErr == nil {
			StateLoads.WithLabelValues("remote").Inc()
			return st, nil
		}
		logger.Warn("discarding invalid remote game state", "user_id", userID, "error", vErr)
	case errors.Is(err, repository.ErrNotFound):
		// fall through to cache
	default:
		logger.Warn("remote load failed, trying cache", "user_id", userID, "error", err)
	}

	st, err = s.cache.Get(ctx, userID)
	if err == nil {
		if vErr := st.Validate(); vErr == nil {
			StateLoads.WithLabelValues("cache").Inc()
			return st, nil
		}
		logger.Warn("discarding invalid cached game state", "user_id", userID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Warn("cache load failed", "user_id", userID, "error", err)
	}

	StateLoads.WithLabelValues("miss").Inc()
	return nil, nil
}

// Top returns the highest scores from the leaderboard read model.
func (s *SyncService) Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	return s.board.Top(ctx, limit)
}

// RankPosition counts entries with a strictly greater score than the user's
// recorded one, plus one. A user with no recorded score gets -1.
func (s *SyncService) RankPosition(ctx context.Context, userID string) (int64, error) {
	score, err := s.board.Score(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}

	above, err := s.board.CountAbove(ctx, score)
	if err != nil {
		return -1, err
	}
	return above + 1, nil
}
