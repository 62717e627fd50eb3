package factories

import (
	"testing"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRosterAlwaysIncludesManager(t *testing.T) {
	var ef EmployeeFactory
	for _, count := range []int{1, 3, 8} {
		roster := ef.CreateRoster(count)
		require.Len(t, roster, count)
		assert.Equal(t, "MANAGER", roster[0].Role)
		for _, e := range roster {
			assert.NotEmpty(t, e.ID)
			assert.NotEmpty(t, e.Name)
			assert.Len(t, e.PIN, 4)
		}
	}
}

func TestCreateRosterFloorsCountAtOne(t *testing.T) {
	var ef EmployeeFactory
	assert.Len(t, ef.CreateRoster(0), 1)
}

func TestCreateCustomersLookCoherent(t *testing.T) {
	var cf CustomerFactory
	customers := cf.CreateCustomers(5)
	require.Len(t, customers, 5)
	for _, c := range customers {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.FirstName)
		assert.NotEmpty(t, c.LastName)
		assert.Contains(t, c.Email, "@")
	}
}

func TestCreateItemsCoverEveryCategory(t *testing.T) {
	var cat CatalogFactory
	categories := cat.CreateCategories()
	groups := cat.CreateModifierGroups()
	taxRate := cat.CreateTaxRate()

	items := cat.CreateItems(categories, groups, taxRate)
	require.NotEmpty(t, items)

	perCategory := make(map[string]int)
	for _, item := range items {
		perCategory[item.CategoryName]++
		assert.Greater(t, item.Price, int64(0), "item %s", item.Name)
		assert.Equal(t, []string{taxRate.ID}, item.TaxRateIDs, "item %s", item.Name)
		if item.CategoryName == "Drinks" {
			assert.Empty(t, item.ModifierGroupIDs, "drinks carry no modifier groups")
		} else {
			assert.NotEmpty(t, item.ModifierGroupIDs, "item %s", item.Name)
		}
	}
	for _, c := range categories {
		assert.Greater(t, perCategory[c.Name], 0, "category %s has no items", c.Name)
	}
}

func TestCreateModifierGroupsBounds(t *testing.T) {
	var cat CatalogFactory
	groups := cat.CreateModifierGroups()
	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.NotEmpty(t, g.Modifiers, "group %s", g.Name)
		if g.MinRequired > 0 {
			assert.GreaterOrEqual(t, g.MaxAllowed, g.MinRequired, "group %s", g.Name)
		}
	}
}

func TestCreateTaxRateIsDefaultEightPercent(t *testing.T) {
	var cat CatalogFactory
	rate := cat.CreateTaxRate()
	assert.True(t, rate.IsDefault)
	assert.Equal(t, int64(80000), rate.Rate) // 8% in basis points
}

func TestCreateDiscountsCoverResolverPaths(t *testing.T) {
	var df DiscountFactory
	discounts := df.CreateDiscounts("cat-desserts")

	byType := make(map[string]*models.Discount)
	for _, d := range discounts {
		assert.True(t, d.Enabled, "discount %s", d.Name)
		byType[d.Type] = d
	}
	require.Contains(t, byType, models.DiscountTypeTimeBased)
	require.Contains(t, byType, models.DiscountTypeLoyalty)
	require.Contains(t, byType, models.DiscountTypeLineItem)
	require.Contains(t, byType, models.DiscountTypeThreshold)
	require.Contains(t, byType, models.DiscountTypeLegacy)

	happyHour := byType[models.DiscountTypeTimeBased]
	assert.Less(t, happyHour.StartHour, happyHour.EndHour)

	assert.Equal(t, []string{"cat-desserts"}, byType[models.DiscountTypeLineItem].CategoryIDs)
	assert.Equal(t, int64(5000), byType[models.DiscountTypeThreshold].MinOrderAmount)
}
