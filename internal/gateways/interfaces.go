package gateways

import (
	"context"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// CatalogProvider reads the merchant's catalog entities from the platform.
type CatalogProvider interface {
	Items(ctx context.Context) ([]*models.Item, error)
	Categories(ctx context.Context) ([]*models.Category, error)
	ModifierGroups(ctx context.Context) ([]*models.ModifierGroup, error)
	Discounts(ctx context.Context) ([]*models.Discount, error)
	Combos(ctx context.Context) ([]*models.Combo, error)
	Coupons(ctx context.Context) ([]*models.Coupon, error)
	TaxRates(ctx context.Context) ([]*models.TaxRate, error)
	Tenders(ctx context.Context) ([]*models.Tender, error)
	Employees(ctx context.Context) ([]*models.Employee, error)
	Customers(ctx context.Context) ([]*models.Customer, error)
	OrderTypes(ctx context.Context) ([]*models.OrderType, error)
}

// CatalogWriter creates catalog entities; used by the seeder only.
type CatalogWriter interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	CreateItem(ctx context.Context, item *models.Item) error
	CreateModifierGroup(ctx context.Context, g *models.ModifierGroup) error
	CreateDiscount(ctx context.Context, d *models.Discount) error
	CreateTaxRate(ctx context.Context, t *models.TaxRate) error
	CreateEmployee(ctx context.Context, e *models.Employee) error
	CreateCustomer(ctx context.Context, c *models.Customer) error
	CreateOrderType(ctx context.Context, ot *models.OrderType) error
}

// OrderGateway mutates a single order on the platform.
type OrderGateway interface {
	CreateOrder(ctx context.Context, employeeID, customerID string) (string, error)
	AddLineItem(ctx context.Context, orderID, itemID string, quantity int, note string) (string, error)
	SetDiningOption(ctx context.Context, orderID, option string) error
	SetOrderType(ctx context.Context, orderID, orderTypeID string) error
	AddModification(ctx context.Context, orderID, lineItemID string, mod models.AppliedModifier) error
	ApplyDiscount(ctx context.Context, orderID string, d models.DiscountApplication) error
	ApplyLineItemDiscount(ctx context.Context, orderID, lineItemID string, d models.DiscountApplication) error
	ApplyServiceCharge(ctx context.Context, orderID, name string, amount int64) error
	UpdateTotal(ctx context.Context, orderID string, total int64) error
	UpdateState(ctx context.Context, orderID, state string) error
	CalculateTotal(ctx context.Context, orderID string) (int64, error)
}

// PaymentGateway settles orders.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, orderID, tenderID string, amount, tip, tax int64) (string, error)
	ProcessSplitPayment(ctx context.Context, orderID string, splits []models.PaymentSplit, total, tip, tax int64) ([]models.Payment, error)
	// ProcessCardPayment tokenizes and charges through the card-processing
	// integration; only usable when the ecommerce token is configured.
	ProcessCardPayment(ctx context.Context, orderID string, amount int64) (string, error)
	CardProcessingConfigured() bool
}

// RefundGateway issues refunds against settled payments.
type RefundGateway interface {
	CreateFullRefund(ctx context.Context, orderID, paymentID, reason string) error
	CreatePartialRefund(ctx context.Context, orderID, paymentID string, amount int64, reason string) error
}

// GiftCardGateway reads and redeems merchant gift cards.
type GiftCardGateway interface {
	GiftCards(ctx context.Context) ([]*models.GiftCard, error)
	Redeem(ctx context.Context, cardID string, amount int64) (*models.Redemption, error)
}

// CashDrawerGateway records local cash-drawer events.
type CashDrawerGateway interface {
	RecordCashPayment(ctx context.Context, orderID, employeeID string, amount int64) error
}

// AuditSink mirrors simulated activity to a local store. Every method is
// best-effort: callers log and swallow failures.
type AuditSink interface {
	RecordSimulatedOrder(ctx context.Context, order *models.SimulatedOrder) error
	RecordSimulatedPayment(ctx context.Context, orderID string, payment models.Payment) error
	MarkRefunded(ctx context.Context, orderID string, amount int64, reason string) error
	RecordDailySummary(ctx context.Context, summary *models.DailySummary) error
	Close() error
}
