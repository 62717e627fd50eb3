package simulator

import (
	"log"
	"math/rand"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// MealPeriodScheduler translates a calendar date into a day's order volume and
// samples per-order meal periods and timestamps.
type MealPeriodScheduler struct {
	cfg *models.Config
	rng *rand.Rand
	loc *time.Location
}

func NewMealPeriodScheduler(cfg *models.Config, rng *rand.Rand) *MealPeriodScheduler {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Timezone %q unavailable, falling back to local time: %v", cfg.Timezone, err)
		loc = time.Local
	}
	return &MealPeriodScheduler{cfg: cfg, rng: rng, loc: loc}
}

// OrderCountForDate draws a uniform order count from the configured range for
// the date's day-of-week category.
func (sch *MealPeriodScheduler) OrderCountForDate(date time.Time) int {
	var r models.OrderCountRange
	switch date.Weekday() {
	case time.Saturday:
		r = sch.cfg.SaturdayOrders
	case time.Friday:
		r = sch.cfg.FridayOrders
	case time.Sunday:
		r = sch.cfg.SundayOrders
	default:
		r = sch.cfg.WeekdayOrders
	}
	return randBetween(sch.rng, r.Min, r.Max)
}

// DistributeOrdersByPeriod allocates totalCount across all periods
// proportional to weight. The last period in the canonical order absorbs the
// rounding remainder so the returned counts always sum to totalCount exactly.
func (sch *MealPeriodScheduler) DistributeOrdersByPeriod(totalCount int) map[models.MealPeriod]int {
	counts := make(map[models.MealPeriod]int, len(models.AllMealPeriods))

	totalWeight := 0
	for _, period := range models.AllMealPeriods {
		totalWeight += sch.cfg.MealPeriods[period].Weight
	}
	if totalWeight == 0 {
		counts[models.PeriodDinner] = totalCount
		return counts
	}

	allocated := 0
	last := len(models.AllMealPeriods) - 1
	for _, period := range models.AllMealPeriods[:last] {
		weight := sch.cfg.MealPeriods[period].Weight
		share := int(float64(totalCount)*float64(weight)/float64(totalWeight) + 0.5)
		counts[period] = share
		allocated += share
	}

	remainder := totalCount - allocated
	if remainder < 0 {
		// Rounded shares overshot totalCount; claw the excess back from the
		// earlier periods so the counts still sum exactly and never go
		// negative.
		overshoot := -remainder
		remainder = 0
		for i := last - 1; i >= 0 && overshoot > 0; i-- {
			period := models.AllMealPeriods[i]
			take := counts[period]
			if take > overshoot {
				take = overshoot
			}
			counts[period] -= take
			overshoot -= take
		}
	}
	counts[models.AllMealPeriods[last]] = remainder
	return counts
}

// WeightedRandomPeriod draws a single period proportional to weight, for
// on-demand generation outside the realistic-day path. Dinner is the fallback
// should the cumulative scan ever fall through.
func (sch *MealPeriodScheduler) WeightedRandomPeriod() models.MealPeriod {
	weights := make(map[models.MealPeriod]int, len(models.AllMealPeriods))
	for _, period := range models.AllMealPeriods {
		weights[period] = sch.cfg.MealPeriods[period].Weight
	}
	return weightedChoice(sch.rng, models.AllMealPeriods, weights, models.PeriodDinner)
}

// GenerateOrderTime composes the date with a random hour inside the period's
// range and a random minute, in the merchant timezone.
func (sch *MealPeriodScheduler) GenerateOrderTime(date time.Time, period models.MealPeriod) time.Time {
	pc := sch.cfg.MealPeriods[period]
	hour := randBetween(sch.rng, pc.StartHour, pc.EndHour-1)
	minute := sch.rng.Intn(60)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, sch.rng.Intn(60), 0, sch.loc)
}

// DiningOptionForPeriod draws a dining option from the period's weight table.
func (sch *MealPeriodScheduler) DiningOptionForPeriod(period models.MealPeriod) string {
	pc := sch.cfg.MealPeriods[period]
	options := []string{models.DiningHere, models.DiningToGo, models.DiningDelivery}
	return weightedChoice(sch.rng, options, pc.DiningWeights, models.DiningHere)
}
