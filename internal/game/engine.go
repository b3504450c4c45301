package game

import "math"

// Rank tiers, lowest to highest.
const (
	RankBronze   = "Bronze"
	RankSilver   = "Silver"
	RankGold     = "Gold"
	RankPlatinum = "Platinum"
	RankDiamond  = "Diamond"
)

// UpgradeCost returns the price of the next level of u: floor(baseCost * 1.5^level).
// Floor, not round — clients compute the same price and both sides must agree.
func UpgradeCost(u Upgrade) float64 {
	return math.Floor(u.BaseCost * math.Pow(1.5, float64(u.CurrentLevel)))
}

// UpgradeEffect returns the mining rate contributed by u at its current level.
// An unpurchased upgrade contributes nothing.
func UpgradeEffect(u Upgrade) float64 {
	return u.BaseEffect * float64(u.CurrentLevel)
}

// TotalMiningRate sums the base rate and every upgrade's contribution.
func TotalMiningRate(baseRate float64, upgrades []Upgrade) float64 {
	total := baseRate
	for _, u := range upgrades {
		total += UpgradeEffect(u)
	}
	return total
}

// RankFor maps a balance to its rank tier. Thresholds are inclusive lower
// bounds evaluated highest first.
func RankFor(balance float64) string {
	switch {
	case balance >= 10000:
		return RankDiamond
	case balance >= 5000:
		return RankPlatinum
	case balance >= 1000:
		return RankGold
	case balance >= 500:
		return RankSilver
	default:
		return RankBronze
	}
}
