package clover

import (
	"context"
	"net/http"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

func (c *Client) Items(ctx context.Context) ([]*models.Item, error) {
	return listAll[*models.Item](ctx, c, "/items?expand=categories,modifierGroups,taxRates&limit=1000")
}

func (c *Client) Categories(ctx context.Context) ([]*models.Category, error) {
	return listAll[*models.Category](ctx, c, "/categories?limit=1000")
}

func (c *Client) ModifierGroups(ctx context.Context) ([]*models.ModifierGroup, error) {
	return listAll[*models.ModifierGroup](ctx, c, "/modifier_groups?expand=modifiers&limit=1000")
}

func (c *Client) Discounts(ctx context.Context) ([]*models.Discount, error) {
	return listAll[*models.Discount](ctx, c, "/discounts?limit=1000")
}

// Combos and Coupons live in custom merchant properties on the sandbox; the
// platform has no first-class resource for either.
func (c *Client) Combos(ctx context.Context) ([]*models.Combo, error) {
	return listAll[*models.Combo](ctx, c, "/properties/combos")
}

func (c *Client) Coupons(ctx context.Context) ([]*models.Coupon, error) {
	return listAll[*models.Coupon](ctx, c, "/properties/coupons")
}

func (c *Client) TaxRates(ctx context.Context) ([]*models.TaxRate, error) {
	return listAll[*models.TaxRate](ctx, c, "/tax_rates?limit=1000")
}

func (c *Client) Tenders(ctx context.Context) ([]*models.Tender, error) {
	return listAll[*models.Tender](ctx, c, "/tenders?limit=100")
}

func (c *Client) Employees(ctx context.Context) ([]*models.Employee, error) {
	return listAll[*models.Employee](ctx, c, "/employees?limit=100")
}

func (c *Client) Customers(ctx context.Context) ([]*models.Customer, error) {
	return listAll[*models.Customer](ctx, c, "/customers?limit=1000")
}

func (c *Client) OrderTypes(ctx context.Context) ([]*models.OrderType, error) {
	return listAll[*models.OrderType](ctx, c, "/order_types?limit=100")
}

func (c *Client) CreateCategory(ctx context.Context, cat *models.Category) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/categories"), cat, cat)
}

func (c *Client) CreateItem(ctx context.Context, item *models.Item) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/items"), item, item)
}

func (c *Client) CreateModifierGroup(ctx context.Context, g *models.ModifierGroup) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/modifier_groups"), g, g)
}

func (c *Client) CreateDiscount(ctx context.Context, d *models.Discount) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/discounts"), d, d)
}

func (c *Client) CreateTaxRate(ctx context.Context, t *models.TaxRate) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/tax_rates"), t, t)
}

func (c *Client) CreateEmployee(ctx context.Context, e *models.Employee) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/employees"), e, e)
}

func (c *Client) CreateCustomer(ctx context.Context, cust *models.Customer) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/customers"), cust, cust)
}

func (c *Client) CreateOrderType(ctx context.Context, ot *models.OrderType) error {
	return c.do(ctx, http.MethodPost, c.merchantPath("/order_types"), ot, ot)
}
