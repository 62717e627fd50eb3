package factories

import (
	"math/rand"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/lucsky/cuid"
)

// menuByCategory is the seed menu. Prices are minor units.
var menuByCategory = map[string][]struct {
	Name  string
	Price int64
}{
	"Breakfast": {
		{"Buttermilk Pancakes", 1095},
		{"Eggs Benedict", 1395},
		{"Breakfast Burrito", 1195},
		{"Avocado Toast", 1050},
		{"Steel-Cut Oatmeal", 695},
	},
	"Appetizers": {
		{"Crispy Calamari", 1295},
		{"Spinach Artichoke Dip", 1095},
		{"Chicken Wings", 1395},
		{"Loaded Nachos", 1195},
		{"Soup of the Day", 650},
	},
	"Entrees": {
		{"Grilled Ribeye", 3295},
		{"Pan-Seared Salmon", 2495},
		{"Chicken Parmesan", 1895},
		{"Classic Cheeseburger", 1495},
		{"Mushroom Risotto", 1795},
		{"Fish and Chips", 1695},
	},
	"Salads": {
		{"Caesar Salad", 1195},
		{"Cobb Salad", 1395},
		{"Greek Salad", 1195},
	},
	"Desserts": {
		{"Chocolate Lava Cake", 895},
		{"New York Cheesecake", 795},
		{"Key Lime Pie", 750},
		{"Ice Cream Sundae", 650},
	},
	"Drinks": {
		{"Fresh Lemonade", 450},
		{"Iced Tea", 350},
		{"Craft Root Beer", 425},
		{"House Coffee", 325},
		{"Orange Juice", 475},
	},
}

type CatalogFactory struct{}

// CreateCategories returns one category per seed menu section.
func (cat *CatalogFactory) CreateCategories() []*models.Category {
	names := []string{"Breakfast", "Appetizers", "Entrees", "Salads", "Desserts", "Drinks"}
	categories := make([]*models.Category, len(names))
	for i, name := range names {
		categories[i] = &models.Category{ID: cuid.New(), Name: name}
	}
	return categories
}

// CreateItems generates the full seed menu under the given categories,
// wiring every item to the default tax rate and food items to the shared
// modifier groups.
func (cat *CatalogFactory) CreateItems(categories []*models.Category, groups []*models.ModifierGroup, taxRate *models.TaxRate) []*models.Item {
	var items []*models.Item
	for _, category := range categories {
		for _, entry := range menuByCategory[category.Name] {
			item := &models.Item{
				ID:           cuid.New(),
				Name:         entry.Name,
				Price:        entry.Price,
				CategoryID:   category.ID,
				CategoryName: category.Name,
			}
			if taxRate != nil {
				item.TaxRateIDs = []string{taxRate.ID}
			}
			if category.Name != "Drinks" && len(groups) > 0 {
				item.ModifierGroupIDs = []string{groups[rand.Intn(len(groups))].ID}
			}
			items = append(items, item)
		}
	}
	return items
}

// CreateModifierGroups returns the shared seed modifier groups: one required
// temperature choice and two optional add-on groups.
func (cat *CatalogFactory) CreateModifierGroups() []*models.ModifierGroup {
	return []*models.ModifierGroup{
		{
			ID:          cuid.New(),
			Name:        "Temperature",
			MinRequired: 1,
			MaxAllowed:  1,
			Modifiers: []models.Modifier{
				{ID: cuid.New(), Name: "Rare", Price: 0},
				{ID: cuid.New(), Name: "Medium", Price: 0},
				{ID: cuid.New(), Name: "Well Done", Price: 0},
			},
		},
		{
			ID:         cuid.New(),
			Name:       "Add-Ons",
			MaxAllowed: 3,
			Modifiers: []models.Modifier{
				{ID: cuid.New(), Name: "Extra Cheese", Price: 150},
				{ID: cuid.New(), Name: "Bacon", Price: 250},
				{ID: cuid.New(), Name: "Avocado", Price: 200},
				{ID: cuid.New(), Name: "Fried Egg", Price: 175},
			},
		},
		{
			ID:         cuid.New(),
			Name:       "Sides",
			MaxAllowed: 2,
			Modifiers: []models.Modifier{
				{ID: cuid.New(), Name: "French Fries", Price: 350},
				{ID: cuid.New(), Name: "Side Salad", Price: 450},
				{ID: cuid.New(), Name: "Onion Rings", Price: 395},
			},
		},
	}
}

// CreateTaxRate returns the default sales tax at 8% in basis points.
func (cat *CatalogFactory) CreateTaxRate() *models.TaxRate {
	return &models.TaxRate{
		ID:        cuid.New(),
		Name:      "Sales Tax",
		Rate:      80000,
		IsDefault: true,
	}
}

// CreateOrderTypes returns the order types matched to dining options at
// assembly time.
func (cat *CatalogFactory) CreateOrderTypes() []*models.OrderType {
	labels := []string{"Dine In", "Take Out", "Delivery"}
	types := make([]*models.OrderType, len(labels))
	for i, label := range labels {
		types[i] = &models.OrderType{ID: cuid.New(), Label: label, Taxable: true}
	}
	return types
}
