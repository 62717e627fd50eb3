package models

// MealPeriod identifies one of the five day parts an order can belong to.
type MealPeriod string

const (
	PeriodBreakfast MealPeriod = "breakfast"
	PeriodLunch     MealPeriod = "lunch"
	PeriodHappyHour MealPeriod = "happy_hour"
	PeriodDinner    MealPeriod = "dinner"
	PeriodLateNight MealPeriod = "late_night"
)

// AllMealPeriods is the canonical iteration order. Count distribution relies on
// this ordering being stable: the last period absorbs rounding remainders.
var AllMealPeriods = []MealPeriod{
	PeriodBreakfast,
	PeriodLunch,
	PeriodHappyHour,
	PeriodDinner,
	PeriodLateNight,
}

// MealPeriodConfig describes one day part: when it runs, what share of the
// day's orders it gets, and what a typical order there looks like.
type MealPeriodConfig struct {
	StartHour           int            `mapstructure:"start_hour"`
	EndHour             int            `mapstructure:"end_hour"`
	Weight              int            `mapstructure:"weight"`
	MinItems            int            `mapstructure:"min_items"`
	MaxItems            int            `mapstructure:"max_items"`
	MinPartySize        int            `mapstructure:"min_party_size"`
	MaxPartySize        int            `mapstructure:"max_party_size"`
	PreferredCategories []string       `mapstructure:"preferred_categories"`
	DiningWeights       map[string]int `mapstructure:"dining_weights"`
}

// DefaultMealPeriods returns the built-in day-part table. Weights sum to 100,
// as do every period's dining-option weights.
func DefaultMealPeriods() map[MealPeriod]MealPeriodConfig {
	return map[MealPeriod]MealPeriodConfig{
		PeriodBreakfast: {
			StartHour: 7, EndHour: 11,
			Weight:   15,
			MinItems: 1, MaxItems: 3,
			MinPartySize: 1, MaxPartySize: 3,
			PreferredCategories: []string{"Breakfast", "Drinks"},
			DiningWeights:       map[string]int{DiningHere: 55, DiningToGo: 40, DiningDelivery: 5},
		},
		PeriodLunch: {
			StartHour: 11, EndHour: 15,
			Weight:   30,
			MinItems: 1, MaxItems: 4,
			MinPartySize: 1, MaxPartySize: 4,
			PreferredCategories: []string{"Entrees", "Salads", "Drinks"},
			DiningWeights:       map[string]int{DiningHere: 45, DiningToGo: 40, DiningDelivery: 15},
		},
		PeriodHappyHour: {
			StartHour: 15, EndHour: 18,
			Weight:   15,
			MinItems: 1, MaxItems: 3,
			MinPartySize: 1, MaxPartySize: 6,
			PreferredCategories: []string{"Appetizers", "Drinks"},
			DiningWeights:       map[string]int{DiningHere: 80, DiningToGo: 15, DiningDelivery: 5},
		},
		PeriodDinner: {
			StartHour: 18, EndHour: 22,
			Weight:   30,
			MinItems: 2, MaxItems: 6,
			MinPartySize: 1, MaxPartySize: 8,
			PreferredCategories: []string{"Entrees", "Appetizers", "Desserts", "Drinks"},
			DiningWeights:       map[string]int{DiningHere: 60, DiningToGo: 20, DiningDelivery: 20},
		},
		PeriodLateNight: {
			StartHour: 22, EndHour: 24,
			Weight:   10,
			MinItems: 1, MaxItems: 3,
			MinPartySize: 1, MaxPartySize: 4,
			PreferredCategories: []string{"Appetizers", "Drinks"},
			DiningWeights:       map[string]int{DiningHere: 40, DiningToGo: 45, DiningDelivery: 15},
		},
	}
}
