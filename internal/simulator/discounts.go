package simulator

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/gateways"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// DiscountResolver decides, for a single order, at most one applied discount.
// The seven steps run in a strict waterfall: each has an independent
// probability gate, and the first step whose gate fires AND finds an eligible
// candidate wins. Later steps are never consulted after a win, so discounts
// never stack.
type DiscountResolver struct {
	cfg      *models.Config
	rng      *rand.Rand
	catalog  gateways.CatalogProvider
	defs     *definitionCache
	itemByID func(string) *models.Item
}

func NewDiscountResolver(cfg *models.Config, rng *rand.Rand, catalog gateways.CatalogProvider, defs *definitionCache, itemByID func(string) *models.Item) *DiscountResolver {
	return &DiscountResolver{
		cfg:      cfg,
		rng:      rng,
		catalog:  catalog,
		defs:     defs,
		itemByID: itemByID,
	}
}

// Resolve runs the waterfall for one order. A nil result means no discount;
// that is business non-eligibility, not an error. Definition-load failures are
// logged and treated as "no candidates for this step".
func (r *DiscountResolver) Resolve(ctx context.Context, order *models.SimulatedOrder, profile *models.CustomerProfile, now time.Time, period models.MealPeriod) *models.DiscountCandidate {
	gates := r.cfg.Gates

	if period == models.PeriodHappyHour && gate(r.rng, gates.TimeBasedDiscount) {
		if c := r.timeBasedDiscount(ctx, order, now); c != nil {
			return c
		}
	}
	if profile != nil && gate(r.rng, gates.LoyaltyDiscount) {
		if c := r.loyaltyDiscount(ctx, order, profile); c != nil {
			return c
		}
	}
	if len(order.LineItems) >= 3 && gate(r.rng, gates.ComboDiscount) {
		if c := r.comboDiscount(ctx, order); c != nil {
			return c
		}
	}
	if gate(r.rng, gates.PromoCode) {
		if c := r.promoCodeDiscount(ctx, order, profile, now); c != nil {
			return c
		}
	}
	if gate(r.rng, gates.LineItemDiscount) {
		if c := r.lineItemDiscount(ctx, order); c != nil {
			return c
		}
	}
	if gate(r.rng, gates.ThresholdDiscount) {
		if c := r.thresholdDiscount(ctx, order); c != nil {
			return c
		}
	}
	if gate(r.rng, gates.LegacyDiscount) {
		if c := r.legacyDiscount(ctx, order); c != nil {
			return c
		}
	}
	return nil
}

// discountDefinitions reads the discount catalog through the TTL cache.
func (r *DiscountResolver) discountDefinitions(ctx context.Context) []*models.Discount {
	v, err := r.defs.Get("discounts", func() (interface{}, error) {
		return r.catalog.Discounts(ctx)
	})
	if err != nil {
		log.Printf("Failed to load discount definitions: %v", err)
		return nil
	}
	return v.([]*models.Discount)
}

func (r *DiscountResolver) comboDefinitions(ctx context.Context) []*models.Combo {
	v, err := r.defs.Get("combos", func() (interface{}, error) {
		return r.catalog.Combos(ctx)
	})
	if err != nil {
		log.Printf("Failed to load combo definitions: %v", err)
		return nil
	}
	return v.([]*models.Combo)
}

func (r *DiscountResolver) couponDefinitions(ctx context.Context) []*models.Coupon {
	v, err := r.defs.Get("coupons", func() (interface{}, error) {
		return r.catalog.Coupons(ctx)
	})
	if err != nil {
		log.Printf("Failed to load coupon definitions: %v", err)
		return nil
	}
	return v.([]*models.Coupon)
}

// timeBasedDiscount picks the first currently-valid time-window discount and
// applies it to the whole order or the first line item, per its scope.
func (r *DiscountResolver) timeBasedDiscount(ctx context.Context, order *models.SimulatedOrder, now time.Time) *models.DiscountCandidate {
	hour := now.Hour()
	for _, d := range r.discountDefinitions(ctx) {
		if !d.Enabled || d.Type != models.DiscountTypeTimeBased {
			continue
		}
		if hour < d.StartHour || hour >= d.EndHour {
			continue
		}

		if d.Scope == models.DiscountScopeLineItem && len(order.LineItems) > 0 {
			li := order.LineItems[0]
			base := li.Price * int64(li.Quantity)
			amount := r.definitionAmount(d, base)
			if amount <= 0 {
				continue
			}
			return &models.DiscountCandidate{
				Type:       models.DiscountTypeTimeBased,
				DiscountID: d.ID,
				Name:       d.Name,
				Percentage: d.Percentage,
				Amount:     -amount,
				LineItemID: li.ID,
			}
		}

		amount := r.definitionAmount(d, order.ItemTotal())
		if amount <= 0 {
			continue
		}
		return &models.DiscountCandidate{
			Type:       models.DiscountTypeTimeBased,
			DiscountID: d.ID,
			Name:       d.Name,
			Percentage: d.Percentage,
			Amount:     -amount,
		}
	}
	return nil
}

// loyaltyDiscount resolves the customer's tier and applies the matching
// loyalty definition as a calculated order-level reduction.
func (r *DiscountResolver) loyaltyDiscount(ctx context.Context, order *models.SimulatedOrder, profile *models.CustomerProfile) *models.DiscountCandidate {
	tier, tierPct := models.ResolveLoyaltyTier(profile.VisitCount)
	if tier == models.TierNone {
		return nil
	}

	for _, d := range r.discountDefinitions(ctx) {
		if !d.Enabled || d.Type != models.DiscountTypeLoyalty || d.LoyaltyTier != string(tier) {
			continue
		}
		pct := d.Percentage
		if pct == 0 {
			pct = tierPct
		}
		amount := percentageAmount(order.ItemTotal(), pct)
		if amount <= 0 {
			return nil
		}
		return &models.DiscountCandidate{
			Type:       models.DiscountTypeLoyalty,
			DiscountID: d.ID,
			Name:       d.Name,
			Percentage: pct,
			Amount:     -amount,
		}
	}
	return nil
}

// comboDiscount detects every satisfiable combo, scores each by computed
// discount amount and applies the highest-value one.
func (r *DiscountResolver) comboDiscount(ctx context.Context, order *models.SimulatedOrder) *models.DiscountCandidate {
	var best *models.DiscountCandidate
	var bestAmount int64

	for _, combo := range r.comboDefinitions(ctx) {
		if !combo.Enabled {
			continue
		}
		matched, ok := r.matchComboComponents(order, combo)
		if !ok {
			continue
		}
		amount := r.comboAmount(order, combo, matched)
		if amount <= 0 {
			continue
		}
		if amount > bestAmount {
			bestAmount = amount
			best = &models.DiscountCandidate{
				Type:       models.DiscountTypeCombo,
				Name:       combo.Name,
				Percentage: combo.Percentage,
				Amount:     -amount,
			}
		}
	}
	return best
}

// matchComboComponents checks whether the order's line items can satisfy every
// required component, without reusing a line item's quantity across
// components. Returns the consumed line items.
func (r *DiscountResolver) matchComboComponents(order *models.SimulatedOrder, combo *models.Combo) ([]models.LineItem, bool) {
	remaining := make(map[int]int, len(order.LineItems)) // line-item index -> unconsumed quantity
	for i, li := range order.LineItems {
		remaining[i] = li.Quantity
	}

	var matched []models.LineItem
	for _, component := range combo.Components {
		needed := component.Quantity
		if needed <= 0 {
			needed = 1
		}
		for i, li := range order.LineItems {
			if needed == 0 {
				break
			}
			if remaining[i] == 0 || !componentMatches(component, li, r.itemByID) {
				continue
			}
			take := remaining[i]
			if take > needed {
				take = needed
			}
			remaining[i] -= take
			needed -= take
			consumed := li
			consumed.Quantity = take
			matched = append(matched, consumed)
		}
		if needed > 0 {
			return nil, false
		}
	}
	return matched, true
}

func componentMatches(component models.ComboComponent, li models.LineItem, itemByID func(string) *models.Item) bool {
	for _, id := range component.ItemIDs {
		if id == li.ItemID {
			return true
		}
	}
	if component.CategoryName != "" {
		if item := itemByID(li.ItemID); item != nil && item.CategoryName == component.CategoryName {
			return true
		}
	}
	return false
}

// comboAmount computes the discount magnitude per the combo's applies_to
// field, honoring the optional max_discount_amount cap.
func (r *DiscountResolver) comboAmount(order *models.SimulatedOrder, combo *models.Combo, matched []models.LineItem) int64 {
	var base int64
	switch combo.AppliesTo {
	case models.ComboAppliesToMatchingItems:
		for _, li := range matched {
			base += li.Price * int64(li.Quantity)
		}
	case models.ComboAppliesToCheapestItems:
		sorted := make([]models.LineItem, len(matched))
		copy(sorted, matched)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
		n := combo.CheapestCount
		if n <= 0 || n > len(sorted) {
			n = len(sorted)
		}
		for _, li := range sorted[:n] {
			base += li.Price * int64(li.Quantity)
		}
	default: // total
		base = order.ItemTotal()
	}

	var amount int64
	if combo.Percentage > 0 {
		amount = percentageAmount(base, combo.Percentage)
	} else {
		amount = combo.Amount
		if amount > base {
			amount = base
		}
	}
	if combo.MaxDiscountAmount > 0 && amount > combo.MaxDiscountAmount {
		amount = combo.MaxDiscountAmount
	}
	return amount
}

// promoCodeDiscount simulates the customer presenting one of the catalog's
// promo codes and applies it when it validates.
func (r *DiscountResolver) promoCodeDiscount(ctx context.Context, order *models.SimulatedOrder, profile *models.CustomerProfile, now time.Time) *models.DiscountCandidate {
	coupons := r.couponDefinitions(ctx)
	if len(coupons) == 0 {
		return nil
	}
	coupon := coupons[r.rng.Intn(len(coupons))]
	if !r.couponValid(coupon, order, profile, now) {
		return nil
	}

	amount := int64(0)
	if coupon.Percentage > 0 {
		amount = percentageAmount(order.ItemTotal(), coupon.Percentage)
	} else {
		amount = coupon.Amount
	}
	if amount <= 0 {
		return nil
	}
	return &models.DiscountCandidate{
		Type:       models.DiscountTypePromoCode,
		Name:       coupon.Name + " (" + coupon.Code + ")",
		Percentage: coupon.Percentage,
		Amount:     -amount,
	}
}

func (r *DiscountResolver) couponValid(coupon *models.Coupon, order *models.SimulatedOrder, profile *models.CustomerProfile, now time.Time) bool {
	if !coupon.Active {
		return false
	}
	if !coupon.ValidFrom.IsZero() && now.Before(coupon.ValidFrom) {
		return false
	}
	if !coupon.ValidUntil.IsZero() && now.After(coupon.ValidUntil) {
		return false
	}
	if coupon.UsageLimit > 0 && coupon.TimesUsed >= coupon.UsageLimit {
		return false
	}
	if order.ItemTotal() < coupon.MinOrderAmount {
		return false
	}
	if coupon.VIPOnly && (profile == nil || !profile.VIP) {
		return false
	}
	if len(coupon.AllowedDays) > 0 {
		ok := false
		for _, day := range coupon.AllowedDays {
			if now.Weekday() == day {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if coupon.EndHour > 0 {
		hour := now.Hour()
		if hour < coupon.StartHour || hour >= coupon.EndHour {
			return false
		}
	}
	if len(coupon.CategoryNames) > 0 && !r.orderTouchesCategories(order, coupon.CategoryNames) {
		return false
	}
	return true
}

func (r *DiscountResolver) orderTouchesCategories(order *models.SimulatedOrder, categories []string) bool {
	for _, li := range order.LineItems {
		item := r.itemByID(li.ItemID)
		if item == nil {
			continue
		}
		for _, name := range categories {
			if item.CategoryName == name {
				return true
			}
		}
	}
	return false
}

// lineItemDiscount picks a random line-item-type definition whose categories
// intersect the order and applies it to the first eligible item.
func (r *DiscountResolver) lineItemDiscount(ctx context.Context, order *models.SimulatedOrder) *models.DiscountCandidate {
	var eligible []*models.Discount
	for _, d := range r.discountDefinitions(ctx) {
		if d.Enabled && d.Type == models.DiscountTypeLineItem {
			eligible = append(eligible, d)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	d := eligible[r.rng.Intn(len(eligible))]

	for _, li := range order.LineItems {
		item := r.itemByID(li.ItemID)
		if item == nil || !categoryEligible(d, item) {
			continue
		}
		base := li.Price * int64(li.Quantity)
		amount := r.definitionAmount(d, base)
		if amount <= 0 {
			return nil
		}
		return &models.DiscountCandidate{
			Type:       models.DiscountTypeLineItem,
			DiscountID: d.ID,
			Name:       d.Name,
			Percentage: d.Percentage,
			Amount:     -amount,
			LineItemID: li.ID,
		}
	}
	return nil
}

func categoryEligible(d *models.Discount, item *models.Item) bool {
	if len(d.CategoryIDs) == 0 {
		return true
	}
	for _, id := range d.CategoryIDs {
		if id == item.CategoryID {
			return true
		}
	}
	return false
}

// thresholdDiscount picks, among definitions whose minimum order amount the
// current total meets, the one with the largest computed amount.
func (r *DiscountResolver) thresholdDiscount(ctx context.Context, order *models.SimulatedOrder) *models.DiscountCandidate {
	total := order.ItemTotal()
	var best *models.Discount
	var bestAmount int64

	for _, d := range r.discountDefinitions(ctx) {
		if !d.Enabled || d.Type != models.DiscountTypeThreshold || d.MinOrderAmount > total {
			continue
		}
		amount := r.definitionAmount(d, total)
		if amount > bestAmount {
			bestAmount = amount
			best = d
		}
	}
	if best == nil {
		return nil
	}
	return &models.DiscountCandidate{
		Type:       models.DiscountTypeThreshold,
		DiscountID: best.ID,
		Name:       best.Name,
		Percentage: best.Percentage,
		Amount:     -bestAmount,
	}
}

// legacyDiscount applies a uniformly random definition from the full catalog
// with no eligibility check beyond existing.
func (r *DiscountResolver) legacyDiscount(ctx context.Context, order *models.SimulatedOrder) *models.DiscountCandidate {
	defs := r.discountDefinitions(ctx)
	if len(defs) == 0 {
		return nil
	}
	d := defs[r.rng.Intn(len(defs))]
	amount := r.definitionAmount(d, order.ItemTotal())
	if amount <= 0 {
		return nil
	}
	return &models.DiscountCandidate{
		Type:       models.DiscountTypeLegacy,
		DiscountID: d.ID,
		Name:       d.Name,
		Percentage: d.Percentage,
		Amount:     -amount,
	}
}

// definitionAmount computes a definition's magnitude against a base amount.
// Percentage definitions are always converted to an absolute amount here;
// flat definitions are clamped to the base so a discount never exceeds what
// it discounts.
func (r *DiscountResolver) definitionAmount(d *models.Discount, base int64) int64 {
	if d.Percentage > 0 {
		return percentageAmount(base, d.Percentage)
	}
	amount := d.Amount
	if amount > base {
		amount = base
	}
	return amount
}
