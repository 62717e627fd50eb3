package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Timezone:       "America/New_York",
		WeekdayOrders:  models.OrderCountRange{Min: 40, Max: 70},
		FridayOrders:   models.OrderCountRange{Min: 70, Max: 110},
		SaturdayOrders: models.OrderCountRange{Min: 90, Max: 140},
		SundayOrders:   models.OrderCountRange{Min: 60, Max: 100},
		MealPeriods:    models.DefaultMealPeriods(),
		Gates:          models.DefaultGates(),
		TipRanges:      models.DefaultTipRanges(),

		FlatTaxRatePercent:     8.0,
		AutoGratuityPartySize:  6,
		AutoGratuityPercentage: 18,
		LargePartyTipFloor:     18,
		RefundPercentage:       5.0,
		CashPreferenceCeiling:  2000,
	}
}

func newTestScheduler(seed int64) *MealPeriodScheduler {
	return NewMealPeriodScheduler(testConfig(), rand.New(rand.NewSource(seed)))
}

func TestDistributeOrdersByPeriodSumsExactly(t *testing.T) {
	sch := newTestScheduler(1)
	for _, total := range []int{1, 7, 50, 99, 140} {
		counts := sch.DistributeOrdersByPeriod(total)

		sum := 0
		for _, period := range models.AllMealPeriods {
			assert.GreaterOrEqual(t, counts[period], 0)
			sum += counts[period]
		}
		assert.Equal(t, total, sum, "total %d", total)
	}
}

func TestDistributeOrdersByPeriodTracksWeights(t *testing.T) {
	sch := newTestScheduler(1)
	counts := sch.DistributeOrdersByPeriod(100)

	// Weights are 15/30/15/30/10, so a 100 order day maps directly.
	assert.Equal(t, 15, counts[models.PeriodBreakfast])
	assert.Equal(t, 30, counts[models.PeriodLunch])
	assert.Equal(t, 15, counts[models.PeriodHappyHour])
	assert.Equal(t, 30, counts[models.PeriodDinner])
	assert.Equal(t, 10, counts[models.PeriodLateNight])
}

func TestDistributeOrdersByPeriodClampsRoundingOvershoot(t *testing.T) {
	cfg := testConfig()
	weights := map[models.MealPeriod]int{
		models.PeriodBreakfast: 25,
		models.PeriodLunch:     25,
		models.PeriodHappyHour: 25,
		models.PeriodDinner:    25,
		models.PeriodLateNight: 0,
	}
	for period, w := range weights {
		pc := cfg.MealPeriods[period]
		pc.Weight = w
		cfg.MealPeriods[period] = pc
	}
	sch := NewMealPeriodScheduler(cfg, rand.New(rand.NewSource(1)))

	// Four shares of 25% each round up on a tiny day, overshooting the total;
	// the overshoot must be clawed back instead of going negative.
	for _, total := range []int{1, 2, 3, 5} {
		counts := sch.DistributeOrdersByPeriod(total)
		sum := 0
		for _, period := range models.AllMealPeriods {
			assert.GreaterOrEqual(t, counts[period], 0, "total %d period %s", total, period)
			sum += counts[period]
		}
		assert.Equal(t, total, sum, "total %d", total)
	}
}

func TestOrderCountForDateUsesDayOfWeekRange(t *testing.T) {
	sch := newTestScheduler(2)

	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Saturday, saturday.Weekday())
	for i := 0; i < 50; i++ {
		n := sch.OrderCountForDate(saturday)
		assert.GreaterOrEqual(t, n, 90)
		assert.LessOrEqual(t, n, 140)
	}

	tuesday := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, tuesday.Weekday())
	for i := 0; i < 50; i++ {
		n := sch.OrderCountForDate(tuesday)
		assert.GreaterOrEqual(t, n, 40)
		assert.LessOrEqual(t, n, 70)
	}
}

func TestGenerateOrderTimeWithinPeriodWindow(t *testing.T) {
	sch := newTestScheduler(3)
	date := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	pc := sch.cfg.MealPeriods[models.PeriodHappyHour]

	for i := 0; i < 100; i++ {
		ts := sch.GenerateOrderTime(date, models.PeriodHappyHour)
		assert.GreaterOrEqual(t, ts.Hour(), pc.StartHour)
		assert.Less(t, ts.Hour(), pc.EndHour)
		assert.Equal(t, date.Day(), ts.Day())
	}
}

func TestWeightedRandomPeriodCoversAllPeriods(t *testing.T) {
	sch := newTestScheduler(4)
	seen := make(map[models.MealPeriod]int)
	for i := 0; i < 2000; i++ {
		seen[sch.WeightedRandomPeriod()]++
	}
	for _, period := range models.AllMealPeriods {
		assert.Greater(t, seen[period], 0, "period %s never drawn", period)
	}
	assert.Greater(t, seen[models.PeriodDinner], seen[models.PeriodLateNight])
}

func TestDiningOptionForPeriodReturnsKnownOption(t *testing.T) {
	sch := newTestScheduler(5)
	valid := map[string]bool{
		models.DiningHere:     true,
		models.DiningToGo:     true,
		models.DiningDelivery: true,
	}
	for i := 0; i < 100; i++ {
		assert.True(t, valid[sch.DiningOptionForPeriod(models.PeriodLunch)])
	}
}
