package models

// Catalog entities mirror the records the sandbox merchant account exposes
// through the platform's REST API. All monetary amounts are integer minor
// units (cents). Tax rates are stored in basis points where 1% = 10,000.

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Price            int64    `json:"price"`
	CategoryID       string   `json:"category_id"`
	CategoryName     string   `json:"category_name"`
	ModifierGroupIDs []string `json:"modifier_group_ids"`
	TaxRateIDs       []string `json:"tax_rate_ids"`
	Hidden           bool     `json:"hidden"`
}

type Modifier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type ModifierGroup struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MinRequired int        `json:"min_required"`
	MaxAllowed  int        `json:"max_allowed"`
	Modifiers   []Modifier `json:"modifiers"`
}

type TaxRate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rate      int64  `json:"rate"` // basis points, 1% = 10000
	IsDefault bool   `json:"is_default"`
}

type Tender struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	LabelKey string `json:"label_key"`
	Enabled  bool   `json:"enabled"`
}

type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	PIN  string `json:"pin"`
}

type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type OrderType struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Taxable  bool   `json:"taxable"`
	IsHidden bool   `json:"is_hidden"`
}

type GiftCard struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Balance int64  `json:"balance"`
	Active  bool   `json:"active"`
}

// Redemption is the gift-card gateway's result for a redeem attempt.
// Shortfall is the portion of the requested amount the card could not cover.
type Redemption struct {
	Success          bool  `json:"success"`
	AmountRedeemed   int64 `json:"amount_redeemed"`
	RemainingBalance int64 `json:"remaining_balance"`
	Shortfall        int64 `json:"shortfall"`
}
