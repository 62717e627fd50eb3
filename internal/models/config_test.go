package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		WeekdayOrders: OrderCountRange{Min: 40, Max: 70},
		MealPeriods:   DefaultMealPeriods(),
		TipRanges:     DefaultTipRanges(),
		Gates:         DefaultGates(),
	}
}

func TestDefaultMealPeriodWeightsSumTo100(t *testing.T) {
	total := 0
	for _, period := range AllMealPeriods {
		pc, ok := DefaultMealPeriods()[period]
		require.True(t, ok, "missing period %s", period)
		total += pc.Weight

		diningTotal := 0
		for _, w := range pc.DiningWeights {
			diningTotal += w
		}
		assert.Equal(t, 100, diningTotal, "dining weights for %s", period)
		assert.Less(t, pc.StartHour, pc.EndHour, "hours for %s", period)
	}
	assert.Equal(t, 100, total)
}

func TestConfigValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfigValidateRejectsBadPeriodWeights(t *testing.T) {
	cfg := validConfig()
	pc := cfg.MealPeriods[PeriodLunch]
	pc.Weight = 50
	cfg.MealPeriods[PeriodLunch] = pc
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsBadDiningWeights(t *testing.T) {
	cfg := validConfig()
	pc := cfg.MealPeriods[PeriodDinner]
	pc.DiningWeights = map[string]int{DiningHere: 90}
	cfg.MealPeriods[PeriodDinner] = pc
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsMissingPeriod(t *testing.T) {
	cfg := validConfig()
	delete(cfg.MealPeriods, PeriodLateNight)
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsInvertedOrderRange(t *testing.T) {
	cfg := validConfig()
	cfg.WeekdayOrders = OrderCountRange{Min: 70, Max: 40}
	assert.Error(t, cfg.Validate())
}

func TestItemTotalIncludesModifiers(t *testing.T) {
	order := &SimulatedOrder{
		LineItems: []LineItem{
			{Price: 1000, Quantity: 2, Modifiers: []AppliedModifier{{Price: 150}}},
			{Price: 500, Quantity: 1},
		},
	}
	// 2*1000 + 2*150 + 500
	assert.Equal(t, int64(2800), order.ItemTotal())
}
