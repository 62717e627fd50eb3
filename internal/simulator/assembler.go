package simulator

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// assembleOrder builds one complete simulated order end to end: staffing,
// item selection, modifiers, discount resolution, totals, payment and the
// final state transition. A nil, nil return means the order was abandoned
// (no line items made it on); an error means the shell itself could not be
// created.
func (s *Simulator) assembleOrder(ctx context.Context, orderTime time.Time, period models.MealPeriod, stats *models.DailyStatistics) (*models.SimulatedOrder, error) {
	pc := s.Config.MealPeriods[period]
	employee := s.employees[s.Rng.Intn(len(s.employees))]
	profile := s.maybeCustomerProfile()
	partySize := randBetween(s.Rng, pc.MinPartySize, pc.MaxPartySize)

	customerID := ""
	if profile != nil {
		customerID = profile.Customer.ID
	}
	orderID, err := s.Gateways.Orders.CreateOrder(ctx, employee.ID, customerID)
	if err != nil {
		return nil, err
	}

	order := &models.SimulatedOrder{
		ID:         orderID,
		EmployeeID: employee.ID,
		CustomerID: customerID,
		State:      models.OrderStateOpen,
		CreatedAt:  orderTime,
	}

	s.setDining(ctx, order, period)

	// Item count scales with the party: period base plus half the party size,
	// never below one.
	itemCount := randBetween(s.Rng, pc.MinItems, pc.MaxItems) + partySize/2
	if itemCount < 1 {
		itemCount = 1
	}
	for _, item := range s.selectItems(pc, itemCount, partySize) {
		s.addLineItem(ctx, order, item, partySize)
	}

	// Payment must never be attempted on an empty order.
	if len(order.LineItems) == 0 {
		log.Printf("Order %s has no line items, abandoning", order.ID)
		if err := s.Gateways.Orders.UpdateState(ctx, order.ID, models.OrderStateOpen); err != nil {
			log.Printf("Failed to leave order %s open: %v", order.ID, err)
		}
		stats.RecordAbandoned()
		return nil, nil
	}

	s.attachModifiers(ctx, order)

	if candidate := s.Resolver.Resolve(ctx, order, profile, orderTime, period); candidate != nil {
		s.applyDiscount(ctx, order, candidate)
	}

	itemTotal := order.ItemTotal()
	order.Subtotal = itemTotal
	if order.Discount != nil {
		order.Subtotal += order.Discount.Amount
		if order.Subtotal < 0 {
			order.Subtotal = 0
		}
	}

	// Large parties get a mandatory service charge instead of a voluntary
	// tip; the two are never both applied.
	if partySize >= s.Config.AutoGratuityPartySize {
		order.ServiceCharge = percentageAmount(order.Subtotal, s.Config.AutoGratuityPercentage)
		if err := s.Gateways.Orders.ApplyServiceCharge(ctx, order.ID, "Auto Gratuity", order.ServiceCharge); err != nil {
			log.Printf("Failed to apply auto gratuity on order %s: %v", order.ID, err)
			order.ServiceCharge = 0
		}
		order.TipAmount = 0
	} else {
		order.TipAmount = s.computeTip(order.DiningOption, partySize, order.Subtotal)
	}

	order.TaxAmount = s.computeTax(order)

	total := order.Subtotal + order.TaxAmount + order.TipAmount + order.ServiceCharge
	if err := s.Gateways.Orders.UpdateTotal(ctx, order.ID, total); err != nil {
		log.Printf("Failed to update total on order %s: %v", order.ID, err)
	}
	s.validateTotal(ctx, order, total)

	if err := s.routePayment(ctx, order, employee, partySize, stats); err != nil {
		log.Printf("Payment failed on order %s: %v", order.ID, err)
		return nil, nil
	}

	if err := s.Gateways.Orders.UpdateState(ctx, order.ID, models.OrderStatePaid); err != nil {
		log.Printf("Failed to mark order %s paid: %v", order.ID, err)
	}
	order.State = models.OrderStatePaid

	modCount, modAmount := 0, int64(0)
	for _, li := range order.LineItems {
		modCount += len(li.Modifiers)
		for _, m := range li.Modifiers {
			modAmount += m.Price * int64(li.Quantity)
		}
	}
	order.Meta = models.OrderMeta{
		Period:         period,
		DiningOption:   order.DiningOption,
		PartySize:      partySize,
		TipAmount:      order.TipAmount,
		TaxAmount:      order.TaxAmount,
		ModifierCount:  modCount,
		ModifierAmount: modAmount,
		OrderTypeLabel: s.orderTypeLabel(order.OrderTypeID),
	}
	if order.Discount != nil {
		order.Meta.DiscountType = order.Discount.Type
		order.Meta.DiscountAmount = order.Discount.Amount
	}
	return order, nil
}

// maybeCustomerProfile assigns a customer 60% of the time, with a randomized
// visit count and VIP flag that exist only for this simulation.
func (s *Simulator) maybeCustomerProfile() *models.CustomerProfile {
	if len(s.customers) == 0 || !gate(s.Rng, s.Config.Gates.CustomerAssigned) {
		return nil
	}
	return &models.CustomerProfile{
		Customer:   s.customers[s.Rng.Intn(len(s.customers))],
		VisitCount: s.Rng.Intn(61),
		VIP:        gate(s.Rng, s.Config.Gates.CustomerVIP),
	}
}

// setDining draws a dining option from the period's weight table and attaches
// a consistent order type when the merchant has one.
func (s *Simulator) setDining(ctx context.Context, order *models.SimulatedOrder, period models.MealPeriod) {
	option := s.Scheduler.DiningOptionForPeriod(period)
	if err := s.Gateways.Orders.SetDiningOption(ctx, order.ID, option); err != nil {
		log.Printf("Failed to set dining option on order %s: %v", order.ID, err)
	}
	order.DiningOption = option

	if ot := s.orderTypeFor(option); ot != nil {
		if err := s.Gateways.Orders.SetOrderType(ctx, order.ID, ot.ID); err != nil {
			log.Printf("Failed to set order type on order %s: %v", order.ID, err)
		} else {
			order.OrderTypeID = ot.ID
		}
	}
}

var diningOrderTypeLabels = map[string]string{
	models.DiningHere:     "Dine In",
	models.DiningToGo:     "Take Out",
	models.DiningDelivery: "Delivery",
}

func (s *Simulator) orderTypeFor(diningOption string) *models.OrderType {
	want := diningOrderTypeLabels[diningOption]
	for _, ot := range s.orderTypes {
		if !ot.IsHidden && ot.Label == want {
			return ot
		}
	}
	return nil
}

func (s *Simulator) orderTypeLabel(orderTypeID string) string {
	for _, ot := range s.orderTypes {
		if ot.ID == orderTypeID {
			return ot.Label
		}
	}
	return ""
}

// selectItems draws count items biased 3x toward the period's preferred
// categories while still sampling the full catalog. Parties of four or more
// first get one item from each preferred category so a large table never
// turns into an all-drinks order.
func (s *Simulator) selectItems(pc models.MealPeriodConfig, count, partySize int) []*models.Item {
	preferred := make(map[string]bool, len(pc.PreferredCategories))
	for _, name := range pc.PreferredCategories {
		preferred[name] = true
	}

	var picks []*models.Item
	if partySize >= 4 {
		for _, category := range pc.PreferredCategories {
			if len(picks) >= count {
				break
			}
			if item := s.randomItemInCategory(category); item != nil {
				picks = append(picks, item)
			}
		}
	}

	weights := make([]float64, len(s.items))
	for i, item := range s.items {
		weights[i] = 1.0
		if preferred[item.CategoryName] {
			weights[i] = 3.0
		}
	}
	for len(picks) < count {
		picks = append(picks, s.items[weightedIndex(s.Rng, weights)])
	}
	return picks
}

func (s *Simulator) randomItemInCategory(category string) *models.Item {
	var matches []*models.Item
	for _, item := range s.items {
		if item.CategoryName == category {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return matches[s.Rng.Intn(len(matches))]
}

// addLineItem attaches one item with a probabilistic quantity and note. A
// failed call abandons only this line item; the order continues with whatever
// made it on.
func (s *Simulator) addLineItem(ctx context.Context, order *models.SimulatedOrder, item *models.Item, partySize int) {
	quantity := 1
	if partySize > 2 && gate(s.Rng, s.Config.Gates.MultiQuantity) {
		quantity = randBetween(s.Rng, 2, 3)
	}
	note := ""
	if gate(s.Rng, s.Config.Gates.LineItemNote) {
		note = models.OrderNotes[s.Rng.Intn(len(models.OrderNotes))]
	}

	lineItemID, err := s.Gateways.Orders.AddLineItem(ctx, order.ID, item.ID, quantity, note)
	if err != nil {
		log.Printf("Failed to add %q to order %s: %v", item.Name, order.ID, err)
		return
	}
	order.LineItems = append(order.LineItems, models.LineItem{
		ID:       lineItemID,
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: quantity,
		Note:     note,
	})
}

// attachModifiers walks each line item and, 30% of the time, selects from the
// item's modifier groups: required groups always get at least their minimum,
// optional groups get one or two half the time.
func (s *Simulator) attachModifiers(ctx context.Context, order *models.SimulatedOrder) {
	for i := range order.LineItems {
		li := &order.LineItems[i]
		item := s.itemByID(li.ItemID)
		if item == nil || len(item.ModifierGroupIDs) == 0 {
			continue
		}
		if !gate(s.Rng, s.Config.Gates.ModifierAttach) {
			continue
		}

		for _, groupID := range item.ModifierGroupIDs {
			group := s.modGroups[groupID]
			if group == nil || len(group.Modifiers) == 0 {
				continue
			}
			var pickCount int
			if group.MinRequired > 0 {
				max := group.MaxAllowed
				if max < group.MinRequired {
					max = group.MinRequired
				}
				pickCount = randBetween(s.Rng, group.MinRequired, max)
			} else if gate(s.Rng, s.Config.Gates.OptionalModifier) {
				pickCount = randBetween(s.Rng, 1, 2)
			}
			if pickCount > len(group.Modifiers) {
				pickCount = len(group.Modifiers)
			}

			for _, idx := range s.Rng.Perm(len(group.Modifiers))[:pickCount] {
				mod := group.Modifiers[idx]
				applied := models.AppliedModifier{
					ModifierID: mod.ID,
					GroupID:    group.ID,
					Name:       mod.Name,
					Price:      mod.Price,
				}
				if err := s.Gateways.Orders.AddModification(ctx, order.ID, li.ID, applied); err != nil {
					log.Printf("Failed to add modifier %q on order %s: %v", mod.Name, order.ID, err)
					continue
				}
				li.Modifiers = append(li.Modifiers, applied)
			}
		}
	}
}

// applyDiscount submits the resolved candidate. The application payload always
// carries the pre-computed amount; a failed submission drops the discount
// rather than the order.
func (s *Simulator) applyDiscount(ctx context.Context, order *models.SimulatedOrder, candidate *models.DiscountCandidate) {
	application := models.DiscountApplication{
		DiscountID: candidate.DiscountID,
		Name:       candidate.Name,
		Percentage: candidate.Percentage,
		Amount:     candidate.Amount,
	}

	var err error
	if candidate.LineItemID != "" {
		err = s.Gateways.Orders.ApplyLineItemDiscount(ctx, order.ID, candidate.LineItemID, application)
	} else {
		err = s.Gateways.Orders.ApplyDiscount(ctx, order.ID, application)
	}
	if err != nil {
		log.Printf("Failed to apply %s discount on order %s: %v", candidate.Type, order.ID, err)
		return
	}
	order.Discount = candidate
}

// computeTip draws a percentage from the dining option's range, floors it for
// large parties and zeroes takeout tips 30% of the time.
func (s *Simulator) computeTip(diningOption string, partySize int, subtotal int64) int64 {
	tipRange, ok := s.Config.TipRanges[diningOption]
	if !ok {
		tipRange = models.TipRange{Min: 10, Max: 20}
	}
	pct := randBetween(s.Rng, tipRange.Min, tipRange.Max)
	if partySize >= s.Config.AutoGratuityPartySize && pct < s.Config.LargePartyTipFloor {
		pct = s.Config.LargePartyTipFloor
	}
	if diningOption == models.DiningToGo && gate(s.Rng, s.Config.Gates.TakeoutZeroTip) {
		return 0
	}
	return percentageAmount(subtotal, int64(pct))
}

// computeTax prefers per-item tax from each item's tax-rate associations
// (basis points, 1% = 10,000). When that computes to zero the merchant's flat
// rate applies to the whole subtotal instead.
func (s *Simulator) computeTax(order *models.SimulatedOrder) int64 {
	var tax int64
	for _, li := range order.LineItems {
		item := s.itemByID(li.ItemID)
		if item == nil {
			continue
		}
		var bps int64
		for _, rateID := range item.TaxRateIDs {
			if rate := s.taxRates[rateID]; rate != nil {
				bps += rate.Rate
			}
		}
		if bps == 0 {
			continue
		}
		lineTotal := li.Price * int64(li.Quantity)
		for _, m := range li.Modifiers {
			lineTotal += m.Price * int64(li.Quantity)
		}
		pct := float64(bps) / 10000.0
		tax += int64(math.Round(float64(lineTotal) * pct / 100.0))
	}
	if tax == 0 {
		tax = int64(math.Round(float64(order.Subtotal) * s.Config.FlatTaxRatePercent / 100.0))
	}
	return tax
}

// validateTotal compares the locally computed total against the platform's.
// A mismatch is a warning, never an error: the platform's rounding is the
// canonical record either way.
func (s *Simulator) validateTotal(ctx context.Context, order *models.SimulatedOrder, local int64) {
	remote, err := s.Gateways.Orders.CalculateTotal(ctx, order.ID)
	if err != nil {
		log.Printf("Could not fetch platform total for order %s: %v", order.ID, err)
		return
	}
	if remote != 0 && remote != local {
		log.Printf("Warning: order %s total mismatch: local %d, platform %d", order.ID, local, remote)
	}
}
