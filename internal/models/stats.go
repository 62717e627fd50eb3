package models

import (
	"sync"
	"time"
)

// DailyStatistics accumulates per-run counters, one mutation per generated
// order. The mutex keeps increments safe should the orchestrator ever run
// assembly on a bounded worker pool; the single-threaded path pays nothing
// measurable for it.
type DailyStatistics struct {
	mu sync.Mutex

	Date             time.Time
	TotalOrders      int
	AbandonedOrders  int
	TotalRevenue     int64
	TotalTax         int64
	TotalTips        int64
	TotalDiscounts   int64
	TotalServiceChgs int64

	OrdersByPeriod    map[MealPeriod]int
	RevenueByPeriod   map[MealPeriod]int64
	OrdersByDining    map[string]int
	OrdersByDiscount  map[string]int
	OrdersByOrderType map[string]int

	SplitPayments     int
	CashPayments      int
	GiftCardPayments  int
	GiftCardRedeemed  int64
	RefundCount       int
	RefundTotal       int64
	PartialRefunds    int
	ModifiersAttached int
}

func NewDailyStatistics(date time.Time) *DailyStatistics {
	return &DailyStatistics{
		Date:              date,
		OrdersByPeriod:    make(map[MealPeriod]int),
		RevenueByPeriod:   make(map[MealPeriod]int64),
		OrdersByDining:    make(map[string]int),
		OrdersByDiscount:  make(map[string]int),
		OrdersByOrderType: make(map[string]int),
	}
}

// RecordOrder folds one completed order into the accumulator.
func (st *DailyStatistics) RecordOrder(order *SimulatedOrder) {
	st.mu.Lock()
	defer st.mu.Unlock()

	revenue := order.Subtotal + order.TaxAmount + order.TipAmount + order.ServiceCharge

	st.TotalOrders++
	st.TotalRevenue += revenue
	st.TotalTax += order.TaxAmount
	st.TotalTips += order.TipAmount
	st.TotalServiceChgs += order.ServiceCharge
	st.ModifiersAttached += order.Meta.ModifierCount

	st.OrdersByPeriod[order.Meta.Period]++
	st.RevenueByPeriod[order.Meta.Period] += revenue
	st.OrdersByDining[order.DiningOption]++
	if order.Meta.OrderTypeLabel != "" {
		st.OrdersByOrderType[order.Meta.OrderTypeLabel]++
	}
	if order.Discount != nil {
		st.OrdersByDiscount[order.Discount.Type]++
		st.TotalDiscounts += -order.Discount.Amount
	}
	if len(order.Payments) > 1 {
		st.SplitPayments++
	}
	for _, p := range order.Payments {
		if p.GiftCardID != "" {
			st.GiftCardPayments++
			st.GiftCardRedeemed += p.Amount
		}
	}
}

func (st *DailyStatistics) RecordAbandoned() {
	st.mu.Lock()
	st.AbandonedOrders++
	st.mu.Unlock()
}

func (st *DailyStatistics) RecordCashPayment() {
	st.mu.Lock()
	st.CashPayments++
	st.mu.Unlock()
}

// RecordRefund notes one successful refund; partial marks a partial refund.
func (st *DailyStatistics) RecordRefund(amount int64, partial bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.RefundCount++
	st.RefundTotal += amount
	if partial {
		st.PartialRefunds++
	}
}

// Summary freezes the accumulator into the serializable report emitted at the
// end of a run.
func (st *DailyStatistics) Summary() *DailySummary {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &DailySummary{
		Date:             st.Date.Format("2006-01-02"),
		TotalOrders:      st.TotalOrders,
		AbandonedOrders:  st.AbandonedOrders,
		TotalRevenue:     st.TotalRevenue,
		TotalTax:         st.TotalTax,
		TotalTips:        st.TotalTips,
		TotalDiscounts:   st.TotalDiscounts,
		TotalServiceChgs: st.TotalServiceChgs,
		SplitPayments:    st.SplitPayments,
		CashPayments:     st.CashPayments,
		GiftCardPayments: st.GiftCardPayments,
		GiftCardRedeemed: st.GiftCardRedeemed,
		RefundCount:      st.RefundCount,
		RefundTotal:      st.RefundTotal,
		PartialRefunds:   st.PartialRefunds,

		OrdersByPeriod:    make(map[string]int, len(st.OrdersByPeriod)),
		RevenueByPeriod:   make(map[string]int64, len(st.RevenueByPeriod)),
		OrdersByDining:    make(map[string]int, len(st.OrdersByDining)),
		OrdersByDiscount:  make(map[string]int, len(st.OrdersByDiscount)),
		OrdersByOrderType: make(map[string]int, len(st.OrdersByOrderType)),
	}
	for k, v := range st.OrdersByPeriod {
		s.OrdersByPeriod[string(k)] = v
	}
	for k, v := range st.RevenueByPeriod {
		s.RevenueByPeriod[string(k)] = v
	}
	for k, v := range st.OrdersByDining {
		s.OrdersByDining[k] = v
	}
	for k, v := range st.OrdersByDiscount {
		s.OrdersByDiscount[k] = v
	}
	for k, v := range st.OrdersByOrderType {
		s.OrdersByOrderType[k] = v
	}
	return s
}

// DailySummary is the end-of-run report written to the audit store and,
// optionally, uploaded to cloud storage.
type DailySummary struct {
	Date              string           `json:"date"`
	TotalOrders       int              `json:"total_orders"`
	AbandonedOrders   int              `json:"abandoned_orders"`
	TotalRevenue      int64            `json:"total_revenue"`
	TotalTax          int64            `json:"total_tax"`
	TotalTips         int64            `json:"total_tips"`
	TotalDiscounts    int64            `json:"total_discounts"`
	TotalServiceChgs  int64            `json:"total_service_charges"`
	OrdersByPeriod    map[string]int   `json:"orders_by_period"`
	RevenueByPeriod   map[string]int64 `json:"revenue_by_period"`
	OrdersByDining    map[string]int   `json:"orders_by_dining_option"`
	OrdersByDiscount  map[string]int   `json:"orders_by_discount_type"`
	OrdersByOrderType map[string]int   `json:"orders_by_order_type"`
	SplitPayments     int              `json:"split_payments"`
	CashPayments      int              `json:"cash_payments"`
	GiftCardPayments  int              `json:"gift_card_payments"`
	GiftCardRedeemed  int64            `json:"gift_card_redeemed"`
	RefundCount       int              `json:"refund_count"`
	RefundTotal       int64            `json:"refund_total"`
	PartialRefunds    int              `json:"partial_refunds"`
}
