package simulator

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

const giftCardsCacheKey = "gift_cards"

var errNoTenders = errors.New("no enabled tenders to settle against")

// routePayment settles an assembled order. Routing runs three gates in order:
// gift card, split payment, single tender. A gift-card or split attempt that
// fails mid-flight falls through to the single-tender path so the order still
// gets paid.
func (s *Simulator) routePayment(ctx context.Context, order *models.SimulatedOrder, employee *models.Employee, partySize int, stats *models.DailyStatistics) error {
	total := order.Subtotal + order.TaxAmount + order.TipAmount + order.ServiceCharge
	if total <= 0 {
		return nil
	}

	if gate(s.Rng, s.Config.Gates.GiftCardPayment) {
		// The redeemed share settles through the merchant's gift-card tender;
		// without one the gate cannot fire at all.
		if giftTender := s.tenderByLabel(models.TenderLabelGiftCard); giftTender != nil {
			if s.payWithGiftCard(ctx, order, employee, giftTender, total, stats) {
				return nil
			}
		}
	}
	if s.shouldSplit(order.DiningOption, partySize) {
		if s.paySplit(ctx, order, partySize, total) {
			return nil
		}
	}
	return s.paySingle(ctx, order, employee, total, stats)
}

// payWithGiftCard redeems against the subtotal-plus-tax base and settles the
// redeemed share through giftTender; tip and service charge always go on a
// regular tender. A shortfall on the card leaves the uncovered portion for the
// companion payment too. Returns false when no usable card exists or the
// redemption fails, so the caller falls back to a regular tender.
func (s *Simulator) payWithGiftCard(ctx context.Context, order *models.SimulatedOrder, employee *models.Employee, giftTender *models.Tender, total int64, stats *models.DailyStatistics) bool {
	card := s.randomGiftCard(ctx)
	if card == nil {
		return false
	}

	base := order.Subtotal + order.TaxAmount
	if base <= 0 {
		return false
	}
	redemption, err := s.Gateways.GiftCards.Redeem(ctx, card.ID, base)
	if err != nil {
		log.Printf("Gift card redemption failed on order %s: %v", order.ID, err)
		return false
	}
	if !redemption.Success || redemption.AmountRedeemed <= 0 {
		return false
	}

	id, err := s.Gateways.Payments.ProcessPayment(ctx, order.ID, giftTender.ID, redemption.AmountRedeemed, 0, order.TaxAmount)
	if err != nil {
		log.Printf("Gift card tender payment failed on order %s: %v", order.ID, err)
		return false
	}
	order.Payments = append(order.Payments, models.Payment{
		ID:         id,
		TenderID:   giftTender.ID,
		Label:      giftTender.Label,
		Amount:     redemption.AmountRedeemed,
		TaxAmount:  order.TaxAmount,
		GiftCardID: card.ID,
	})

	remainder := total - redemption.AmountRedeemed
	if remainder > 0 {
		tender := s.randomTender(false)
		if tender == nil {
			log.Printf("No tender available for gift card remainder on order %s", order.ID)
			return false
		}
		id, err := s.Gateways.Payments.ProcessPayment(ctx, order.ID, tender.ID, remainder, order.TipAmount, 0)
		if err != nil {
			log.Printf("Gift card remainder payment failed on order %s: %v", order.ID, err)
			return false
		}
		order.Payments = append(order.Payments, models.Payment{
			ID:        id,
			TenderID:  tender.ID,
			Label:     tender.Label,
			Amount:    remainder,
			TipAmount: order.TipAmount,
		})
		s.recordIfCash(ctx, order, employee, tender, remainder, stats)
	}
	return true
}

func (s *Simulator) randomGiftCard(ctx context.Context) *models.GiftCard {
	value, err := s.defs.Get(giftCardsCacheKey, func() (interface{}, error) {
		return s.Gateways.GiftCards.GiftCards(ctx)
	})
	if err != nil {
		log.Printf("Failed to list gift cards: %v", err)
		return nil
	}
	var usable []*models.GiftCard
	for _, card := range value.([]*models.GiftCard) {
		if card.Active && card.Balance > 0 {
			usable = append(usable, card)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	return usable[s.Rng.Intn(len(usable))]
}

// shouldSplit decides between the elevated dine-in-party rate and the base
// rate. Splitting needs at least two enabled tenders to be meaningful.
func (s *Simulator) shouldSplit(diningOption string, partySize int) bool {
	if len(s.enabledTenders()) < 2 {
		return false
	}
	if diningOption == models.DiningHere && partySize >= 2 {
		return gate(s.Rng, s.Config.Gates.SplitDineInParty)
	}
	return gate(s.Rng, s.Config.Gates.SplitBase)
}

// paySplit settles the order across two to four tenders, one per diner up to
// the tender count. Shares are even 70% of the time and randomized otherwise;
// either way the percentages sum to exactly 100. Returns false when the split
// could not run, so the caller falls back to a single tender; a split that
// fails partway keeps whatever shares did settle.
func (s *Simulator) paySplit(ctx context.Context, order *models.SimulatedOrder, partySize int, total int64) bool {
	tenders := s.enabledTenders()
	n := partySize
	if n > 4 {
		n = 4
	}
	if n > len(tenders) {
		n = len(tenders)
	}
	if n < 2 {
		return false
	}

	var percentages []int
	if gate(s.Rng, s.Config.Gates.EvenSplit) {
		percentages = evenSplitPercentages(n)
	} else {
		percentages = generateSplitPercentages(s.Rng, n)
	}

	splits := make([]models.PaymentSplit, n)
	for i, idx := range s.Rng.Perm(len(tenders))[:n] {
		splits[i] = models.PaymentSplit{
			TenderID:   tenders[idx].ID,
			Label:      tenders[idx].Label,
			Percentage: percentages[i],
		}
	}

	payments, err := s.Gateways.Payments.ProcessSplitPayment(ctx, order.ID, splits, total, order.TipAmount, order.TaxAmount)
	order.Payments = append(order.Payments, payments...)
	if err != nil {
		log.Printf("Split payment on order %s settled %d/%d shares: %v", order.ID, len(payments), n, err)
		return len(payments) > 0
	}
	return true
}

// paySingle settles on one tender. Small orders lean toward cash; card-labeled
// tenders route through the card-processing integration when it is configured.
func (s *Simulator) paySingle(ctx context.Context, order *models.SimulatedOrder, employee *models.Employee, total int64, stats *models.DailyStatistics) error {
	var tender *models.Tender
	if order.Subtotal < s.Config.CashPreferenceCeiling && gate(s.Rng, s.Config.Gates.CashPreference) {
		tender = s.tenderByLabel(models.TenderLabelCash)
	}
	if tender == nil {
		tender = s.randomTender(true)
	}
	if tender == nil {
		return errNoTenders
	}

	var paymentID string
	var err error
	if isCardTender(tender) && s.Gateways.Payments.CardProcessingConfigured() {
		paymentID, err = s.Gateways.Payments.ProcessCardPayment(ctx, order.ID, total)
	} else {
		paymentID, err = s.Gateways.Payments.ProcessPayment(ctx, order.ID, tender.ID, total, order.TipAmount, order.TaxAmount)
	}
	if err != nil {
		return err
	}

	order.Payments = append(order.Payments, models.Payment{
		ID:        paymentID,
		TenderID:  tender.ID,
		Label:     tender.Label,
		Amount:    total,
		TipAmount: order.TipAmount,
		TaxAmount: order.TaxAmount,
	})
	s.recordIfCash(ctx, order, employee, tender, total, stats)
	return nil
}

// recordIfCash mirrors a cash settlement into the merchant's cash drawer and
// the day's counters. Drawer failures are logged, never fatal.
func (s *Simulator) recordIfCash(ctx context.Context, order *models.SimulatedOrder, employee *models.Employee, tender *models.Tender, amount int64, stats *models.DailyStatistics) {
	if !strings.EqualFold(tender.Label, models.TenderLabelCash) {
		return
	}
	stats.RecordCashPayment()
	if err := s.Gateways.CashDrawer.RecordCashPayment(ctx, order.ID, employee.ID, amount); err != nil {
		log.Printf("Failed to record cash event for order %s: %v", order.ID, err)
	}
}

// randomTender draws a random enabled tender; includeCash false skips cash so
// gift-card remainders settle electronically.
func (s *Simulator) randomTender(includeCash bool) *models.Tender {
	var pool []*models.Tender
	for _, t := range s.enabledTenders() {
		if !includeCash && strings.EqualFold(t.Label, models.TenderLabelCash) {
			continue
		}
		if strings.EqualFold(t.Label, models.TenderLabelGiftCard) {
			continue
		}
		pool = append(pool, t)
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[s.Rng.Intn(len(pool))]
}

func (s *Simulator) tenderByLabel(label string) *models.Tender {
	for _, t := range s.enabledTenders() {
		if strings.EqualFold(t.Label, label) {
			return t
		}
	}
	return nil
}

func isCardTender(t *models.Tender) bool {
	return strings.Contains(t.LabelKey, "credit_card") || strings.EqualFold(t.Label, "credit card")
}
