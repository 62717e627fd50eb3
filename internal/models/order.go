package models

import "time"

// AppliedModifier records one modifier attached to a line item.
type AppliedModifier struct {
	ModifierID string `json:"modifier_id"`
	GroupID    string `json:"group_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
}

// LineItem is one ordered item on a simulated order.
type LineItem struct {
	ID        string            `json:"id"` // assigned by the platform
	ItemID    string            `json:"item_id"`
	Name      string            `json:"name"`
	Price     int64             `json:"price"`
	Quantity  int               `json:"quantity"`
	Note      string            `json:"note,omitempty"`
	Modifiers []AppliedModifier `json:"modifiers,omitempty"`
}

// Payment records one settled tender against an order.
type Payment struct {
	ID         string `json:"id"`
	TenderID   string `json:"tender_id"`
	Label      string `json:"tender_label"`
	Amount     int64  `json:"amount"`
	TipAmount  int64  `json:"tip_amount"`
	TaxAmount  int64  `json:"tax_amount"`
	Percentage int    `json:"percentage,omitempty"` // share of a split payment
	GiftCardID string `json:"gift_card_id,omitempty"`
}

// PaymentSplit is one share of a multi-tender settlement. Percentages across
// an order's splits always sum to exactly 100.
type PaymentSplit struct {
	TenderID   string `json:"tender_id"`
	Label      string `json:"tender_label"`
	Percentage int    `json:"percentage"`
}

// SimulatedOrder is the transient aggregate built during one order's
// simulation. Once paid, the canonical record belongs to the platform; only
// the best-effort audit mirror keeps a local copy.
type SimulatedOrder struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	DiningOption  string             `json:"dining_option"`
	OrderTypeID   string             `json:"order_type_id,omitempty"`
	LineItems     []LineItem         `json:"line_items"`
	Discount      *DiscountCandidate `json:"-"`
	Subtotal      int64              `json:"subtotal"`
	TaxAmount     int64              `json:"tax_amount"`
	TipAmount     int64              `json:"tip_amount"`
	ServiceCharge int64              `json:"service_charge"`
	Payments      []Payment          `json:"payments"`
	State         string             `json:"state"`
	CreatedAt     time.Time          `json:"created_at"`
	Meta          OrderMeta          `json:"meta"`
}

// OrderMeta is the metadata envelope attached to the in-memory result of one
// assembled order.
type OrderMeta struct {
	Period         MealPeriod `json:"period"`
	DiningOption   string     `json:"dining_option"`
	PartySize      int        `json:"party_size"`
	TipAmount      int64      `json:"tip_amount"`
	TaxAmount      int64      `json:"tax_amount"`
	DiscountType   string     `json:"discount_type,omitempty"`
	DiscountAmount int64      `json:"discount_amount,omitempty"`
	ModifierCount  int        `json:"modifier_count"`
	ModifierAmount int64      `json:"modifier_amount"`
	OrderTypeLabel string     `json:"order_type_label,omitempty"`
}

// ItemTotal sums price*quantity plus modifier prices over all line items.
func (o *SimulatedOrder) ItemTotal() int64 {
	var total int64
	for _, li := range o.LineItems {
		total += li.Price * int64(li.Quantity)
		for _, m := range li.Modifiers {
			total += m.Price * int64(li.Quantity)
		}
	}
	return total
}

// CustomerProfile carries the ephemeral per-simulation inputs for an assigned
// customer. Visit count and VIP status are randomized per run, never written
// back to the platform's customer records.
type CustomerProfile struct {
	Customer   *Customer
	VisitCount int
	VIP        bool
}
