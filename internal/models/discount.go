package models

import "time"

// Discount types, in waterfall order. At most one discount of any type is
// applied per order.
const (
	DiscountTypeTimeBased = "time_based"
	DiscountTypeLoyalty   = "loyalty"
	DiscountTypeCombo     = "combo"
	DiscountTypePromoCode = "promo_code"
	DiscountTypeLineItem  = "line_item"
	DiscountTypeThreshold = "threshold"
	DiscountTypeLegacy    = "legacy"
)

// Discount scopes for time-based and line-item definitions.
const (
	DiscountScopeOrder    = "order"
	DiscountScopeLineItem = "line_item"
)

// Discount is a discount definition from the merchant catalog.
type Discount struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Percentage     int64    `json:"percentage"` // whole percent, 0 when amount-based
	Amount         int64    `json:"amount"`     // positive magnitude in minor units, 0 when percentage-based
	Type           string   `json:"type"`
	Scope          string   `json:"scope"`
	StartHour      int      `json:"start_hour"` // time_based only
	EndHour        int      `json:"end_hour"`
	MinOrderAmount int64    `json:"min_order_amount"` // threshold only
	LoyaltyTier    string   `json:"loyalty_tier"`     // loyalty only
	CategoryIDs    []string `json:"category_ids"`     // line_item eligibility
	Enabled        bool     `json:"enabled"`
}

// Combo applies_to semantics.
const (
	ComboAppliesToTotal         = "total"
	ComboAppliesToMatchingItems = "matching_items"
	ComboAppliesToCheapestItems = "cheapest_items"
)

// ComboComponent is one required slot of a combo: either a category reference
// or an explicit item list, with a required quantity.
type ComboComponent struct {
	CategoryName string   `json:"category_name"`
	ItemIDs      []string `json:"item_ids"`
	Quantity     int      `json:"quantity"`
}

// Combo is a bundle discount triggered by a qualifying set of line items.
type Combo struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Components        []ComboComponent `json:"components"`
	Percentage        int64            `json:"percentage"`
	Amount            int64            `json:"amount"`
	AppliesTo         string           `json:"applies_to"`
	CheapestCount     int              `json:"cheapest_count"`      // cheapest_items cap, 0 = all matched
	MaxDiscountAmount int64            `json:"max_discount_amount"` // 0 = uncapped
	Enabled           bool             `json:"enabled"`
}

// Coupon is a promo-code definition with its eligibility rules.
type Coupon struct {
	ID             string         `json:"id"`
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	Percentage     int64          `json:"percentage"`
	Amount         int64          `json:"amount"`
	Active         bool           `json:"active"`
	ValidFrom      time.Time      `json:"valid_from"`
	ValidUntil     time.Time      `json:"valid_until"`
	UsageLimit     int            `json:"usage_limit"` // 0 = unlimited
	TimesUsed      int            `json:"times_used"`
	MinOrderAmount int64          `json:"min_order_amount"`
	VIPOnly        bool           `json:"vip_only"`
	AllowedDays    []time.Weekday `json:"allowed_days"` // empty = any day
	StartHour      int            `json:"start_hour"`   // 0/0 = any hour
	EndHour        int            `json:"end_hour"`
	CategoryNames  []string       `json:"category_names"` // empty = any category
}

// DiscountCandidate is the resolver's winning pick for a single order. It is
// never persisted; it lives only while the order is assembled.
type DiscountCandidate struct {
	Type         string
	DiscountID   string // empty for inline applications (combos, coupons)
	Name         string
	Percentage   int64 // informational; Amount is always authoritative
	Amount       int64 // negative minor units, always pre-computed
	LineItemID   string
	TargetItemID string
}

// DiscountApplication is the payload submitted to the order gateway. The
// platform reports a zero amount when later reading back percentage-only
// discounts, so Amount must always carry the locally computed value even for
// percentage discounts.
type DiscountApplication struct {
	DiscountID string `json:"discount_id,omitempty"`
	Name       string `json:"name"`
	Percentage int64  `json:"percentage,omitempty"`
	Amount     int64  `json:"amount"`
}
