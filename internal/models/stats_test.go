package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleOrder() *SimulatedOrder {
	return &SimulatedOrder{
		ID:            "ord1",
		DiningOption:  DiningHere,
		Subtotal:      2000,
		TaxAmount:     160,
		TipAmount:     400,
		ServiceCharge: 0,
		Discount: &DiscountCandidate{
			Type:   DiscountTypeTimeBased,
			Amount: -300,
		},
		Payments: []Payment{
			{ID: "p1", Label: "Credit Card", Amount: 1280, Percentage: 50},
			{ID: "p2", Label: "Cash", Amount: 1280, Percentage: 50},
		},
		State: OrderStatePaid,
		Meta: OrderMeta{
			Period:        PeriodHappyHour,
			PartySize:     2,
			ModifierCount: 1,
		},
	}
}

func TestDailyStatisticsRecordOrder(t *testing.T) {
	st := NewDailyStatistics(time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC))
	st.RecordOrder(sampleOrder())

	assert.Equal(t, 1, st.TotalOrders)
	assert.Equal(t, int64(2560), st.TotalRevenue)
	assert.Equal(t, int64(160), st.TotalTax)
	assert.Equal(t, int64(400), st.TotalTips)
	assert.Equal(t, int64(300), st.TotalDiscounts)
	assert.Equal(t, 1, st.OrdersByPeriod[PeriodHappyHour])
	assert.Equal(t, 1, st.OrdersByDining[DiningHere])
	assert.Equal(t, 1, st.OrdersByDiscount[DiscountTypeTimeBased])
	assert.Equal(t, 1, st.SplitPayments)
}

func TestDailyStatisticsGiftCardTracking(t *testing.T) {
	st := NewDailyStatistics(time.Now())
	order := sampleOrder()
	order.Payments = []Payment{
		{ID: "g1", Label: TenderLabelGiftCard, Amount: 1500, GiftCardID: "card9"},
	}
	st.RecordOrder(order)

	assert.Equal(t, 1, st.GiftCardPayments)
	assert.Equal(t, int64(1500), st.GiftCardRedeemed)
	assert.Equal(t, 0, st.SplitPayments)
}

func TestDailyStatisticsRefundsAndAbandoned(t *testing.T) {
	st := NewDailyStatistics(time.Now())
	st.RecordAbandoned()
	st.RecordCashPayment()
	st.RecordRefund(500, false)
	st.RecordRefund(250, true)

	assert.Equal(t, 1, st.AbandonedOrders)
	assert.Equal(t, 1, st.CashPayments)
	assert.Equal(t, 2, st.RefundCount)
	assert.Equal(t, int64(750), st.RefundTotal)
	assert.Equal(t, 1, st.PartialRefunds)
}

func TestDailyStatisticsSummary(t *testing.T) {
	st := NewDailyStatistics(time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC))
	st.RecordOrder(sampleOrder())
	st.RecordRefund(100, true)

	s := st.Summary()
	assert.Equal(t, "2025-03-18", s.Date)
	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, int64(2560), s.TotalRevenue)
	assert.Equal(t, 1, s.OrdersByPeriod[string(PeriodHappyHour)])
	assert.Equal(t, 1, s.RefundCount)
	assert.Equal(t, 1, s.PartialRefunds)
}
