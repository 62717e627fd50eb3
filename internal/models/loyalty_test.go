package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLoyaltyTier(t *testing.T) {
	cases := []struct {
		visits  int
		tier    LoyaltyTier
		percent int64
	}{
		{0, TierNone, 0},
		{4, TierNone, 0},
		{5, TierBronze, 5},
		{9, TierBronze, 5},
		{10, TierSilver, 10},
		{24, TierSilver, 10},
		{25, TierGold, 15},
		{49, TierGold, 15},
		{50, TierPlatinum, 20},
		{60, TierPlatinum, 20},
	}
	for _, tc := range cases {
		tier, percent := ResolveLoyaltyTier(tc.visits)
		assert.Equal(t, tc.tier, tier, "visits=%d", tc.visits)
		assert.Equal(t, tc.percent, percent, "visits=%d", tc.visits)
	}
}

func TestResolveLoyaltyTierMonotonic(t *testing.T) {
	var prev int64 = -1
	for visits := 0; visits <= 100; visits++ {
		_, percent := ResolveLoyaltyTier(visits)
		assert.GreaterOrEqual(t, percent, prev, "discount must never shrink as visits grow")
		prev = percent
	}
}
