package factories

import (
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/lucsky/cuid"
)

type DiscountFactory struct{}

// CreateDiscounts returns the seed discount definitions, one per resolver
// path that reads merchant-defined discounts.
func (df *DiscountFactory) CreateDiscounts(dessertCategoryID string) []*models.Discount {
	return []*models.Discount{
		{
			ID:         cuid.New(),
			Name:       "Happy Hour 15% Off",
			Percentage: 15,
			Type:       models.DiscountTypeTimeBased,
			Scope:      models.DiscountScopeOrder,
			StartHour:  15,
			EndHour:    18,
			Enabled:    true,
		},
		{
			ID:          cuid.New(),
			Name:        "Gold Member Reward",
			Percentage:  15,
			Type:        models.DiscountTypeLoyalty,
			Scope:       models.DiscountScopeOrder,
			LoyaltyTier: string(models.TierGold),
			Enabled:     true,
		},
		{
			ID:          cuid.New(),
			Name:        "Dessert Special",
			Percentage:  10,
			Type:        models.DiscountTypeLineItem,
			Scope:       models.DiscountScopeLineItem,
			CategoryIDs: []string{dessertCategoryID},
			Enabled:     true,
		},
		{
			ID:             cuid.New(),
			Name:           "$5 Off Orders Over $50",
			Amount:         500,
			Type:           models.DiscountTypeThreshold,
			Scope:          models.DiscountScopeOrder,
			MinOrderAmount: 5000,
			Enabled:        true,
		},
		{
			ID:         cuid.New(),
			Name:       "Manager Courtesy",
			Percentage: 5,
			Type:       models.DiscountTypeLegacy,
			Scope:      models.DiscountScopeOrder,
			Enabled:    true,
		},
	}
}
