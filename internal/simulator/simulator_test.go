package simulator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	created         int
	lineItems       int
	failAddLineItem bool
	states          map[string]string
	appliedDiscount *models.DiscountApplication
	serviceCharges  map[string]int64
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{
		states:         make(map[string]string),
		serviceCharges: make(map[string]int64),
	}
}

func (f *fakeOrders) CreateOrder(ctx context.Context, employeeID, customerID string) (string, error) {
	f.created++
	return fmt.Sprintf("order-%d", f.created), nil
}

func (f *fakeOrders) AddLineItem(ctx context.Context, orderID, itemID string, quantity int, note string) (string, error) {
	if f.failAddLineItem {
		return "", errors.New("item rejected")
	}
	f.lineItems++
	return fmt.Sprintf("li-%d", f.lineItems), nil
}

func (f *fakeOrders) SetDiningOption(ctx context.Context, orderID, option string) error { return nil }
func (f *fakeOrders) SetOrderType(ctx context.Context, orderID, orderTypeID string) error {
	return nil
}
func (f *fakeOrders) AddModification(ctx context.Context, orderID, lineItemID string, mod models.AppliedModifier) error {
	return nil
}

func (f *fakeOrders) ApplyDiscount(ctx context.Context, orderID string, d models.DiscountApplication) error {
	f.appliedDiscount = &d
	return nil
}

func (f *fakeOrders) ApplyLineItemDiscount(ctx context.Context, orderID, lineItemID string, d models.DiscountApplication) error {
	f.appliedDiscount = &d
	return nil
}

func (f *fakeOrders) ApplyServiceCharge(ctx context.Context, orderID, name string, amount int64) error {
	f.serviceCharges[orderID] = amount
	return nil
}

func (f *fakeOrders) UpdateTotal(ctx context.Context, orderID string, total int64) error { return nil }
func (f *fakeOrders) UpdateState(ctx context.Context, orderID, state string) error {
	f.states[orderID] = state
	return nil
}
func (f *fakeOrders) CalculateTotal(ctx context.Context, orderID string) (int64, error) {
	return 0, nil
}

type fakePayments struct {
	payments int
	splits   int
	cards    int
}

func (f *fakePayments) ProcessPayment(ctx context.Context, orderID, tenderID string, amount, tip, tax int64) (string, error) {
	f.payments++
	return fmt.Sprintf("pay-%d", f.payments), nil
}

func (f *fakePayments) ProcessSplitPayment(ctx context.Context, orderID string, splits []models.PaymentSplit, total, tip, tax int64) ([]models.Payment, error) {
	f.splits++
	payments := make([]models.Payment, 0, len(splits))
	var settled int64
	for i, split := range splits {
		share := total * int64(split.Percentage) / 100
		if i == len(splits)-1 {
			share = total - settled
		}
		settled += share
		f.payments++
		payments = append(payments, models.Payment{
			ID:         fmt.Sprintf("pay-%d", f.payments),
			TenderID:   split.TenderID,
			Label:      split.Label,
			Amount:     share,
			Percentage: split.Percentage,
		})
	}
	return payments, nil
}

func (f *fakePayments) ProcessCardPayment(ctx context.Context, orderID string, amount int64) (string, error) {
	f.cards++
	return fmt.Sprintf("charge-%d", f.cards), nil
}

func (f *fakePayments) CardProcessingConfigured() bool { return false }

type fakeRefunds struct {
	full    int
	partial int
}

func (f *fakeRefunds) CreateFullRefund(ctx context.Context, orderID, paymentID, reason string) error {
	f.full++
	return nil
}

func (f *fakeRefunds) CreatePartialRefund(ctx context.Context, orderID, paymentID string, amount int64, reason string) error {
	f.partial++
	return nil
}

type fakeGiftCards struct {
	cards []*models.GiftCard
}

func (f *fakeGiftCards) GiftCards(ctx context.Context) ([]*models.GiftCard, error) {
	return f.cards, nil
}

func (f *fakeGiftCards) Redeem(ctx context.Context, cardID string, amount int64) (*models.Redemption, error) {
	for _, card := range f.cards {
		if card.ID != cardID {
			continue
		}
		redeemed := amount
		if redeemed > card.Balance {
			redeemed = card.Balance
		}
		card.Balance -= redeemed
		return &models.Redemption{
			Success:          redeemed > 0,
			AmountRedeemed:   redeemed,
			RemainingBalance: card.Balance,
			Shortfall:        amount - redeemed,
		}, nil
	}
	return nil, errors.New("unknown card")
}

type fakeCashDrawer struct {
	events int
}

func (f *fakeCashDrawer) RecordCashPayment(ctx context.Context, orderID, employeeID string, amount int64) error {
	f.events++
	return nil
}

type fixture struct {
	sim     *Simulator
	orders  *fakeOrders
	pay     *fakePayments
	refunds *fakeRefunds
	gifts   *fakeGiftCards
	drawer  *fakeCashDrawer
}

func newFixture(t *testing.T, cfg *models.Config, catalog *fakeCatalog) *fixture {
	f := &fixture{
		orders:  newFakeOrders(),
		pay:     &fakePayments{},
		refunds: &fakeRefunds{},
		gifts:   &fakeGiftCards{},
		drawer:  &fakeCashDrawer{},
	}
	cfg.Seed = 1
	f.sim = NewSimulator(cfg, Gateways{
		Catalog:    catalog,
		Orders:     f.orders,
		Payments:   f.pay,
		Refunds:    f.refunds,
		GiftCards:  f.gifts,
		CashDrawer: f.drawer,
	})
	require.NoError(t, f.sim.loadCatalog(context.Background()))
	return f
}

func minimalCatalog(price int64) *fakeCatalog {
	return &fakeCatalog{
		items: []*models.Item{
			{ID: "item1", Name: "Classic Cheeseburger", Price: price, CategoryName: "Entrees"},
		},
		tenders: []*models.Tender{
			{ID: "t-cash", Label: "Cash", Enabled: true},
			{ID: "t-card", Label: "Credit Card", LabelKey: "com.clover.tender.credit_card", Enabled: true},
		},
		employees: []*models.Employee{{ID: "emp1", Name: "Alex Doe", Role: "SERVER"}},
	}
}

// pinPeriod forces the dinner period to a fixed party size and item count so
// assembly becomes deterministic apart from the seeded source.
func pinPeriod(cfg *models.Config, partySize, items int) {
	pc := cfg.MealPeriods[models.PeriodDinner]
	pc.MinPartySize, pc.MaxPartySize = partySize, partySize
	pc.MinItems, pc.MaxItems = items, items
	pc.DiningWeights = map[string]int{models.DiningHere: 100, models.DiningToGo: 0, models.DiningDelivery: 0}
	cfg.MealPeriods[models.PeriodDinner] = pc
}

func dinnerTime() time.Time {
	return time.Date(2025, 3, 18, 19, 0, 0, 0, time.UTC)
}

func TestAssembleOrderLargePartyServiceChargeExcludesTip(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{} // all probabilistic branches off
	pinPeriod(cfg, 6, 2)
	f := newFixture(t, cfg, minimalCatalog(2000))

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Zero(t, order.TipAmount)
	assert.Equal(t, percentageAmount(order.Subtotal, 18), order.ServiceCharge)
	assert.Equal(t, order.ServiceCharge, f.orders.serviceCharges[order.ID])
	assert.Equal(t, models.OrderStatePaid, order.State)
	assert.NotEmpty(t, order.Payments)
}

func TestAssembleOrderSmallPartyTipsWithoutServiceCharge(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{}
	pinPeriod(cfg, 2, 2)
	f := newFixture(t, cfg, minimalCatalog(2000))

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Zero(t, order.ServiceCharge)
	// HERE tips run 15 to 25 percent of the subtotal.
	low := percentageAmount(order.Subtotal, 15)
	high := percentageAmount(order.Subtotal, 25)
	assert.GreaterOrEqual(t, order.TipAmount, low)
	assert.LessOrEqual(t, order.TipAmount, high)
}

func TestAssembleOrderAbandonedWithoutLineItems(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{}
	pinPeriod(cfg, 2, 2)
	f := newFixture(t, cfg, minimalCatalog(2000))
	f.orders.failAddLineItem = true

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)

	assert.Nil(t, order)
	assert.Equal(t, 1, stats.AbandonedOrders)
	assert.Zero(t, f.pay.payments, "no payment may be attempted on an empty order")
	assert.Equal(t, models.OrderStateOpen, f.orders.states["order-1"])
}

func TestAssembleOrderFlatTaxFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{}
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, minimalCatalog(2000))

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	// No tax-rate associations, so the 8% flat rate applies to the subtotal.
	assert.Equal(t, percentageAmount(order.Subtotal, 8), order.TaxAmount)
}

func TestAssembleOrderPerItemTaxPreferred(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{}
	pinPeriod(cfg, 1, 1)
	catalog := minimalCatalog(2000)
	catalog.items[0].TaxRateIDs = []string{"tr1"}
	catalog.taxRates = []*models.TaxRate{{ID: "tr1", Name: "Sales Tax", Rate: 62500}}
	f := newFixture(t, cfg, catalog)

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	// 62,500 basis points is 6.25%; 2000 * 6.25% = 125, not the flat 8%.
	require.Equal(t, int64(2000), order.Subtotal)
	assert.Equal(t, int64(125), order.TaxAmount)
}

func withGiftCardTender(catalog *fakeCatalog) *fakeCatalog {
	catalog.tenders = append(catalog.tenders, &models.Tender{
		ID: "t-gift", Label: "Gift Card", LabelKey: "com.clover.tender.gift_card", Enabled: true,
	})
	return catalog
}

func TestGiftCardCoversBaseRemainderOnTender(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{GiftCardPayment: 1.0}
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, withGiftCardTender(minimalCatalog(5000)))
	f.gifts.cards = []*models.GiftCard{{ID: "gc1", Number: "6006", Balance: 2500, Active: true}}

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	// Both shares settle through the gateway, the redeemed one on the
	// gift-card tender.
	assert.Equal(t, 2, f.pay.payments)
	require.Len(t, order.Payments, 2)
	assert.Equal(t, "t-gift", order.Payments[0].TenderID)
	assert.Equal(t, "gc1", order.Payments[0].GiftCardID)
	assert.Equal(t, int64(2500), order.Payments[0].Amount)

	total := order.Subtotal + order.TaxAmount + order.TipAmount + order.ServiceCharge
	assert.Equal(t, total-2500, order.Payments[1].Amount)
	assert.Empty(t, order.Payments[1].GiftCardID)
	assert.NotEqual(t, "t-gift", order.Payments[1].TenderID)

	stats.RecordOrder(order)
	assert.Equal(t, 1, stats.GiftCardPayments)
	assert.Equal(t, int64(2500), stats.GiftCardRedeemed)
}

func TestGiftCardFullCoverageSinglePayment(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{GiftCardPayment: 1.0, TakeoutZeroTip: 1.0}
	pinPeriod(cfg, 1, 1)
	pc := cfg.MealPeriods[models.PeriodDinner]
	pc.DiningWeights = map[string]int{models.DiningHere: 0, models.DiningToGo: 100, models.DiningDelivery: 0}
	cfg.MealPeriods[models.PeriodDinner] = pc

	f := newFixture(t, cfg, withGiftCardTender(minimalCatalog(1000)))
	f.gifts.cards = []*models.GiftCard{{ID: "gc1", Number: "6006", Balance: 100000, Active: true}}

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	// Tip forced to zero, so the card covers subtotal plus tax entirely with
	// one payment on the gift-card tender.
	require.Len(t, order.Payments, 1)
	assert.Equal(t, "t-gift", order.Payments[0].TenderID)
	assert.Equal(t, order.Subtotal+order.TaxAmount, order.Payments[0].Amount)
}

func TestGiftCardGateRequiresGiftCardTender(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{GiftCardPayment: 1.0}
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, minimalCatalog(5000))
	f.gifts.cards = []*models.GiftCard{{ID: "gc1", Number: "6006", Balance: 2500, Active: true}}

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	// No gift-card tender on the merchant: the order settles on a regular
	// tender and the card is never touched.
	require.Len(t, order.Payments, 1)
	assert.Empty(t, order.Payments[0].GiftCardID)
	assert.Equal(t, int64(2500), f.gifts.cards[0].Balance)
}

func TestCashPaymentRecordsDrawerEvent(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{CashPreference: 1.0}
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, minimalCatalog(1000))

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, order.Payments, 1)
	assert.Equal(t, "Cash", order.Payments[0].Label)
	assert.Equal(t, 1, f.drawer.events)
	assert.Equal(t, 1, stats.CashPayments)
}

func TestCashPreferenceIgnoredAboveCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{CashPreference: 1.0}
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, minimalCatalog(5000))

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	// Subtotal is above the 2000 ceiling, so cash preference never fires.
	// The random draw may still land on cash; what must hold is that the
	// drawer only sees events for cash settlements.
	if order.Payments[0].Label == "Cash" {
		assert.Equal(t, 1, f.drawer.events)
	} else {
		assert.Zero(t, f.drawer.events)
	}
}

func TestSplitPaymentSharesSumToTotal(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{SplitDineInParty: 1.0, EvenSplit: 1.0}
	pinPeriod(cfg, 4, 2)
	f := newFixture(t, cfg, minimalCatalog(2000))

	stats := models.NewDailyStatistics(dinnerTime())
	order, err := f.sim.assembleOrder(context.Background(), dinnerTime(), models.PeriodDinner, stats)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, order.Payments, 2) // two enabled tenders caps the split
	total := order.Subtotal + order.TaxAmount + order.TipAmount + order.ServiceCharge

	var settled int64
	pctSum := 0
	for _, p := range order.Payments {
		settled += p.Amount
		pctSum += p.Percentage
	}
	assert.Equal(t, total, settled)
	assert.Equal(t, 100, pctSum)

	stats.RecordOrder(order)
	assert.Equal(t, 1, stats.SplitPayments)
}

func TestRunDayRefundsConfiguredShare(t *testing.T) {
	cfg := testConfig()
	cfg.Gates = models.Gates{}
	cfg.RefundPercentage = 100
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, minimalCatalog(1000))

	summary := f.sim.RunDay(context.Background(), dinnerTime(), 5)

	assert.Equal(t, 5, summary.TotalOrders)
	assert.Equal(t, 5, summary.RefundCount)
	assert.Equal(t, 5, f.refunds.full+f.refunds.partial)
}

func TestRunDayWithoutItemsProducesEmptySummary(t *testing.T) {
	cfg := testConfig()
	pinPeriod(cfg, 1, 1)
	f := newFixture(t, cfg, &fakeCatalog{
		tenders:   []*models.Tender{{ID: "t1", Label: "Cash", Enabled: true}},
		employees: []*models.Employee{{ID: "emp1"}},
	})

	summary := f.sim.RunDay(context.Background(), dinnerTime(), 5)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, f.orders.created)
}

func TestProcessRefundsRoundsUp(t *testing.T) {
	cfg := testConfig()
	cfg.RefundPercentage = 5
	f := newFixture(t, cfg, minimalCatalog(1000))

	completed := make([]*models.SimulatedOrder, 10)
	for i := range completed {
		completed[i] = &models.SimulatedOrder{
			ID:       fmt.Sprintf("order-%d", i),
			Payments: []models.Payment{{ID: fmt.Sprintf("pay-%d", i), Amount: 1000}},
		}
	}
	stats := models.NewDailyStatistics(dinnerTime())
	f.sim.processRefunds(context.Background(), completed, stats)

	// ceil(10 * 5%) = 1
	assert.Equal(t, 1, stats.RefundCount)
	assert.Equal(t, 1, f.refunds.full+f.refunds.partial)
}
