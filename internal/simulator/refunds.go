package simulator

import (
	"context"
	"log"
	"math"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// processRefunds refunds a configured percentage of the day's completed
// orders, rounded up so a nonzero percentage always refunds at least one
// order. Full refunds outnumber partials 60/40; partials take 25 to 75
// percent of the first settled payment. Each refund failure is logged and the
// loop continues.
func (s *Simulator) processRefunds(ctx context.Context, completed []*models.SimulatedOrder, stats *models.DailyStatistics) {
	if len(completed) == 0 || s.Config.RefundPercentage <= 0 {
		return
	}

	count := int(math.Ceil(float64(len(completed)) * s.Config.RefundPercentage / 100.0))
	if count > len(completed) {
		count = len(completed)
	}
	log.Printf("Refunding %d of %d orders", count, len(completed))

	for _, idx := range s.Rng.Perm(len(completed))[:count] {
		order := completed[idx]
		if len(order.Payments) == 0 {
			continue
		}
		payment := order.Payments[0]
		reason := models.RefundReasons[s.Rng.Intn(len(models.RefundReasons))]

		if gate(s.Rng, 0.60) {
			if err := s.Gateways.Refunds.CreateFullRefund(ctx, order.ID, payment.ID, reason); err != nil {
				log.Printf("Full refund failed for order %s: %v", order.ID, err)
				continue
			}
			stats.RecordRefund(payment.Amount, false)
			s.auditRefund(ctx, order.ID, payment.Amount, reason)
			continue
		}

		amount := percentageAmount(payment.Amount, int64(randBetween(s.Rng, 25, 75)))
		if amount <= 0 {
			continue
		}
		if err := s.Gateways.Refunds.CreatePartialRefund(ctx, order.ID, payment.ID, amount, reason); err != nil {
			log.Printf("Partial refund failed for order %s: %v", order.ID, err)
			continue
		}
		stats.RecordRefund(amount, true)
		s.auditRefund(ctx, order.ID, amount, reason)
	}
}

func (s *Simulator) auditRefund(ctx context.Context, orderID string, amount int64, reason string) {
	if s.Gateways.Audit == nil {
		return
	}
	if err := s.Gateways.Audit.MarkRefunded(ctx, orderID, amount, reason); err != nil {
		log.Printf("Audit mirror failed for refund on order %s: %v", orderID, err)
	}
}
