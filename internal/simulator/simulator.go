package simulator

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/gateways"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Gateways bundles the external collaborators the simulator drives. Audit may
// be nil; everything else is required.
type Gateways struct {
	Catalog    gateways.CatalogProvider
	Orders     gateways.OrderGateway
	Payments   gateways.PaymentGateway
	Refunds    gateways.RefundGateway
	GiftCards  gateways.GiftCardGateway
	CashDrawer gateways.CashDrawerGateway
	Audit      gateways.AuditSink
}

// Simulator synthesizes a day's worth of orders, payments and refunds against
// the sandbox merchant. One order is fully assembled, including all external
// calls, before the next begins.
type Simulator struct {
	Config    *models.Config
	Gateways  Gateways
	Rng       *rand.Rand
	Scheduler *MealPeriodScheduler
	Resolver  *DiscountResolver

	defs *definitionCache

	items      []*models.Item
	itemsByID  map[string]*models.Item
	modGroups  map[string]*models.ModifierGroup
	taxRates   map[string]*models.TaxRate
	tenders    []*models.Tender
	employees  []*models.Employee
	customers  []*models.Customer
	orderTypes []*models.OrderType
}

func NewSimulator(cfg *models.Config, gw Gateways) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Simulator{
		Config:    cfg,
		Gateways:  gw,
		Rng:       rng,
		Scheduler: NewMealPeriodScheduler(cfg, rng),
		defs:      newDefinitionCache(cfg.DefinitionCacheTTL, cfg.DefinitionCacheEntries),
		itemsByID: make(map[string]*models.Item),
		modGroups: make(map[string]*models.ModifierGroup),
		taxRates:  make(map[string]*models.TaxRate),
	}
	s.Resolver = NewDiscountResolver(cfg, rng, gw.Catalog, s.defs, s.itemByID)
	return s
}

func (s *Simulator) itemByID(id string) *models.Item {
	return s.itemsByID[id]
}

// loadCatalog reads the static catalog once per run and checks the fatal
// preconditions: a merchant with no items, employees or tenders cannot be
// simulated against.
func (s *Simulator) loadCatalog(ctx context.Context) error {
	items, err := s.Gateways.Catalog.Items(ctx)
	if err != nil {
		return err
	}
	s.items = s.items[:0]
	for _, item := range items {
		if item.Hidden {
			continue
		}
		s.items = append(s.items, item)
		s.itemsByID[item.ID] = item
	}

	groups, err := s.Gateways.Catalog.ModifierGroups(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		s.modGroups[g.ID] = g
	}

	rates, err := s.Gateways.Catalog.TaxRates(ctx)
	if err != nil {
		return err
	}
	for _, rate := range rates {
		s.taxRates[rate.ID] = rate
	}

	if s.tenders, err = s.Gateways.Catalog.Tenders(ctx); err != nil {
		return err
	}
	if s.employees, err = s.Gateways.Catalog.Employees(ctx); err != nil {
		return err
	}
	if s.customers, err = s.Gateways.Catalog.Customers(ctx); err != nil {
		return err
	}
	if s.orderTypes, err = s.Gateways.Catalog.OrderTypes(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Simulator) checkPreconditions() bool {
	switch {
	case len(s.items) == 0:
		log.Printf("Cannot simulate: merchant has no items. Run the seed command first.")
	case len(s.employees) == 0:
		log.Printf("Cannot simulate: merchant has no employees. Run the seed command first.")
	case len(s.enabledTenders()) == 0:
		log.Printf("Cannot simulate: merchant has no enabled tenders.")
	default:
		return true
	}
	return false
}

func (s *Simulator) enabledTenders() []*models.Tender {
	var out []*models.Tender
	for _, t := range s.tenders {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

// RunDay simulates a full day for date. orderCount overrides the day-of-week
// draw when positive. Per-order failures never abort the batch; only the
// fatal preconditions return an empty summary.
func (s *Simulator) RunDay(ctx context.Context, date time.Time, orderCount int) *models.DailySummary {
	stats := models.NewDailyStatistics(date)

	if err := s.loadCatalog(ctx); err != nil {
		log.Printf("Failed to load merchant catalog: %v", err)
		return stats.Summary()
	}
	if !s.checkPreconditions() {
		return stats.Summary()
	}

	total := orderCount
	if total <= 0 {
		total = s.Scheduler.OrderCountForDate(date)
	}
	counts := s.Scheduler.DistributeOrdersByPeriod(total)
	log.Printf("Simulating %d orders for %s (%s)", total, date.Format("2006-01-02"), date.Weekday())

	bar := progressbar.Default(int64(total), "orders")
	var completed []*models.SimulatedOrder

	for _, period := range models.AllMealPeriods {
		for i := 0; i < counts[period]; i++ {
			orderTime := s.Scheduler.GenerateOrderTime(date, period)
			order, err := s.assembleOrder(ctx, orderTime, period, stats)
			_ = bar.Add(1)
			if err != nil {
				log.Printf("Order in %s abandoned after error: %v", period, err)
				continue
			}
			if order == nil {
				continue
			}
			completed = append(completed, order)
			stats.RecordOrder(order)
			s.auditOrder(ctx, order)
		}
	}
	_ = bar.Finish()

	s.processRefunds(ctx, completed, stats)

	summary := stats.Summary()
	s.recordSummary(ctx, summary)
	logSummary(summary)
	return summary
}

func (s *Simulator) auditOrder(ctx context.Context, order *models.SimulatedOrder) {
	if s.Gateways.Audit == nil {
		return
	}
	if err := s.Gateways.Audit.RecordSimulatedOrder(ctx, order); err != nil {
		log.Printf("Audit mirror failed for order %s: %v", order.ID, err)
	}
	for _, payment := range order.Payments {
		if err := s.Gateways.Audit.RecordSimulatedPayment(ctx, order.ID, payment); err != nil {
			log.Printf("Audit mirror failed for payment %s on order %s: %v", payment.ID, order.ID, err)
		}
	}
}

func (s *Simulator) recordSummary(ctx context.Context, summary *models.DailySummary) {
	if s.Gateways.Audit == nil {
		return
	}
	if err := s.Gateways.Audit.RecordDailySummary(ctx, summary); err != nil {
		log.Printf("Failed to record daily summary: %v", err)
	}
}

func logSummary(s *models.DailySummary) {
	log.Printf("Day %s complete: %d orders (%d abandoned), revenue %d, tax %d, tips %d, discounts %d",
		s.Date, s.TotalOrders, s.AbandonedOrders, s.TotalRevenue, s.TotalTax, s.TotalTips, s.TotalDiscounts)
	for _, period := range models.AllMealPeriods {
		if n := s.OrdersByPeriod[string(period)]; n > 0 {
			log.Printf("  %-11s %4d orders, revenue %d", period, n, s.RevenueByPeriod[string(period)])
		}
	}
	log.Printf("  splits %d, cash %d, gift cards %d (%d redeemed), refunds %d (%d, %d partial)",
		s.SplitPayments, s.CashPayments, s.GiftCardPayments, s.GiftCardRedeemed,
		s.RefundCount, s.RefundTotal, s.PartialRefunds)
}
