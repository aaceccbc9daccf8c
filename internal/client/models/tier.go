package models

// Tier is a membership rank. The set and order of tiers is fixed; only the
// pricing attached to each tier is editable.
type Tier string

const (
	TierWarrior     Tier = "Warrior"
	TierMaster      Tier = "Master"
	TierGrandmaster Tier = "Grandmaster"
	TierEpic        Tier = "Epic"
	TierLegend      Tier = "Legend"
	TierMythic      Tier = "Mythic"
)

var tierOrder = []Tier{TierWarrior, TierMaster, TierGrandmaster, TierEpic, TierLegend, TierMythic}

// TierOrder returns all tiers in ascending rank. The slice is a copy.
func TierOrder() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// LowestTier is where every new user starts.
func LowestTier() Tier { return tierOrder[0] }

// Index returns the rank of t, or -1 for names outside the fixed set.
func (t Tier) Index() int {
	for i, x := range tierOrder {
		if x == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the fixed tiers.
func (t Tier) Valid() bool { return t.Index() >= 0 }

// TierPricing is the admin-editable part of a tier.
type TierPricing struct {
	Price      int64 `json:"price"`
	Commission int   `json:"commission"`
}

// TierInfo is a tier together with its pricing, used for ordered listings.
type TierInfo struct {
	Tier Tier
	TierPricing
}

// DefaultTierPricing is the table seeded on first run. Prices and
// commissions increase strictly with rank.
func DefaultTierPricing() map[Tier]TierPricing {
	return map[Tier]TierPricing{
		TierWarrior:     {Price: 0, Commission: 5},
		TierMaster:      {Price: 100000, Commission: 8},
		TierGrandmaster: {Price: 250000, Commission: 12},
		TierEpic:        {Price: 500000, Commission: 15},
		TierLegend:      {Price: 1000000, Commission: 20},
		TierMythic:      {Price: 2500000, Commission: 25},
	}
}
