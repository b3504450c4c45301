package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUpgradeNotFound     = errors.New("upgrade not found")
	ErrMaxLevelReached     = errors.New("upgrade already at max level")
	ErrInsufficientBalance = errors.New("not enough coins")
)

// Upgrade is one purchasable mining rate booster. Levels only go up.
type Upgrade struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	BaseCost     float64 `json:"baseCost"`
	CurrentLevel int     `json:"currentLevel"`
	MaxLevel     int     `json:"maxLevel"`
	BaseEffect   float64 `json:"baseEffect"`
	Owned        bool    `json:"owned"`
}

// State is the full progression state of one player. All transitions return a
// new value and leave the receiver untouched; callers own persistence.
type State struct {
	Balance          float64   `json:"balance"`
	MiningRate       float64   `json:"miningRate"`
	AccumulatedCoins float64   `json:"accumulatedCoins"`
	Rank             string    `json:"rank"`
	Upgrades         []Upgrade `json:"upgrades"`
	LastClaimTime    int64     `json:"lastClaimTime"` // epoch millis
}

// NewState returns the starting state for a fresh player.
func NewState(now time.Time) *State {
	upgrades := Catalog()
	return &State{
		Balance:          0,
		MiningRate:       TotalMiningRate(BaseMiningRate, upgrades),
		AccumulatedCoins: 0,
		Rank:             RankBronze,
		Upgrades:         upgrades,
		LastClaimTime:    now.UnixMilli(),
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	out := *s
	out.Upgrades = make([]Upgrade, len(s.Upgrades))
	copy(out.Upgrades, s.Upgrades)
	return &out
}

// Validate reports whether a loaded document is complete enough to play from.
// Anything that fails here is treated as no saved state at all.
func (s *State) Validate() error {
	if s == nil {
		return errors.New("nil state")
	}
	if s.Balance < 0 {
		return errors.New("negative balance")
	}
	if s.Rank == "" {
		return errors.New("missing rank")
	}
	if len(s.Upgrades) == 0 {
		return errors.New("missing upgrades")
	}
	if s.LastClaimTime <= 0 {
		return errors.New("missing last claim time")
	}
	for _, u := range s.Upgrades {
		if u.ID == "" {
			return errors.New("upgrade without id")
		}
		if u.MaxLevel < 1 {
			return fmt.Errorf("upgrade %s: invalid max level", u.ID)
		}
		if u.CurrentLevel < 0 || u.CurrentLevel > u.MaxLevel {
			return fmt.Errorf("upgrade %s: level out of range", u.ID)
		}
	}
	// the rate is derived state; a document claiming more than its upgrades
	// earn would drive inflated accrual forever
	if math.Abs(s.MiningRate-TotalMiningRate(BaseMiningRate, s.Upgrades)) > 1e-6 {
		return errors.New("mining rate does not match upgrades")
	}
	return nil
}

// Purchase buys one level of the named upgrade. On success the returned state
// has the level bumped, the pre-increment cost deducted and the mining rate
// recomputed. Rank, accumulated coins and the claim timestamp are left alone;
// only Claim re-evaluates rank. The input state is never modified.
func Purchase(s *State, upgradeID string) (*State, string, error) {
	idx := -1
	for i := range s.Upgrades {
		if s.Upgrades[i].ID == upgradeID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, "", ErrUpgradeNotFound
	}

	u := s.Upgrades[idx]
	if u.CurrentLevel >= u.MaxLevel {
		return nil, "", ErrMaxLevelReached
	}

	cost := UpgradeCost(u)
	if s.Balance < cost {
		return nil, "", ErrInsufficientBalance
	}

	out := s.Clone()
	out.Upgrades[idx].CurrentLevel++
	out.Upgrades[idx].Owned = true
	out.Balance -= cost
	out.MiningRate = TotalMiningRate(BaseMiningRate, out.Upgrades)

	msg := fmt.Sprintf("Successfully upgraded %s to level %d", u.Name, u.CurrentLevel+1)
	return out, msg, nil
}

// Settle computes the coins mined between the last claim and now at the
// current rate. Accumulated coins are derived from the claim timestamp rather
// than added incrementally, so settling twice with the same now is a no-op
// and a clock that runs backwards yields zero, never negative accrual.
func Settle(s *State, now time.Time) *State {
	elapsedMs := now.UnixMilli() - s.LastClaimTime
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	out := s.Clone()
	out.AccumulatedCoins = s.MiningRate * float64(elapsedMs) / 1000
	return out
}

// Claim settles accumulated coins into the balance, resets the accrual window
// and re-evaluates rank. This is the only transition that touches rank.
func Claim(s *State, now time.Time) *State {
	out := s.Clone()
	out.Balance += out.AccumulatedCoins
	out.AccumulatedCoins = 0
	out.Rank = RankFor(out.Balance)
	out.LastClaimTime = now.UnixMilli()
	return out
}
