package models

// LoyaltyTier is derived from a customer's visit count, never stored.
type LoyaltyTier string

const (
	TierNone     LoyaltyTier = "none"
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

type loyaltyLevel struct {
	Tier       LoyaltyTier
	MinVisits  int
	Percentage int64
}

// loyaltyLevels is ordered highest tier first; the first threshold the
// customer meets wins.
var loyaltyLevels = []loyaltyLevel{
	{TierPlatinum, 50, 20},
	{TierGold, 25, 15},
	{TierSilver, 10, 10},
	{TierBronze, 5, 5},
}

// ResolveLoyaltyTier maps a visit count to the highest qualifying tier and its
// discount percentage. Below five visits there is no tier and no discount.
func ResolveLoyaltyTier(visitCount int) (LoyaltyTier, int64) {
	for _, level := range loyaltyLevels {
		if visitCount >= level.MinVisits {
			return level.Tier, level.Percentage
		}
	}
	return TierNone, 0
}
