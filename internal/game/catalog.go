package game

// BaseMiningRate is the rate every player mines at with no upgrades, in coins per second.
const BaseMiningRate = 0.1

// Catalog returns the full set of purchasable upgrades at level zero.
// The slice is freshly allocated on every call so callers may mutate it.
func Catalog() []Upgrade {
	return []Upgrade{
		{
			ID:          "basic_miner",
			Name:        "Basic Miner",
			Description: "Increases mining rate by 0.2 ₿/s",
			BaseCost:    50,
			MaxLevel:    10,
			BaseEffect:  0.2,
		},
		{
			ID:          "advanced_miner",
			Name:        "Advanced Miner",
			Description: "Increases mining rate by 0.5 ₿/s",
			BaseCost:    200,
			MaxLevel:    10,
			BaseEffect:  0.5,
		},
		{
			ID:          "mining_rig",
			Name:        "Mining Rig",
			Description: "Increases mining rate by 1.0 ₿/s",
			BaseCost:    500,
			MaxLevel:    5,
			BaseEffect:  1.0,
		},
		{
			ID:          "mining_farm",
			Name:        "Mining Farm",
			Description: "Increases mining rate by 5.0 ₿/s",
			BaseCost:    2000,
			MaxLevel:    3,
			BaseEffect:  5.0,
		},
	}
}
