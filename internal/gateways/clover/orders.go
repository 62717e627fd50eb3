package clover

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

type orderRef struct {
	ID string `json:"id"`
}

func (c *Client) CreateOrder(ctx context.Context, employeeID, customerID string) (string, error) {
	body := map[string]interface{}{
		"employee": map[string]string{"id": employeeID},
		"state":    models.OrderStateOpen,
	}
	if customerID != "" {
		body["customers"] = []map[string]string{{"id": customerID}}
	}
	var ref orderRef
	if err := c.do(ctx, http.MethodPost, c.merchantPath("/orders"), body, &ref); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (c *Client) AddLineItem(ctx context.Context, orderID, itemID string, quantity int, note string) (string, error) {
	body := map[string]interface{}{
		"item":    map[string]string{"id": itemID},
		"unitQty": quantity,
	}
	if note != "" {
		body["note"] = note
	}
	var ref orderRef
	url := c.merchantPath(fmt.Sprintf("/orders/%s/line_items", orderID))
	if err := c.do(ctx, http.MethodPost, url, body, &ref); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (c *Client) SetDiningOption(ctx context.Context, orderID, option string) error {
	switch option {
	case models.DiningHere, models.DiningToGo, models.DiningDelivery:
	default:
		// A caller contract violation, not a platform hiccup.
		return fmt.Errorf("unknown dining option %q", option)
	}
	url := c.merchantPath(fmt.Sprintf("/orders/%s", orderID))
	return c.do(ctx, http.MethodPost, url, map[string]string{"diningOption": option}, nil)
}

func (c *Client) SetOrderType(ctx context.Context, orderID, orderTypeID string) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s", orderID))
	body := map[string]interface{}{"orderType": map[string]string{"id": orderTypeID}}
	return c.do(ctx, http.MethodPost, url, body, nil)
}

func (c *Client) AddModification(ctx context.Context, orderID, lineItemID string, mod models.AppliedModifier) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s/line_items/%s/modifications", orderID, lineItemID))
	body := map[string]interface{}{
		"modifier": map[string]string{"id": mod.ModifierID},
		"name":     mod.Name,
		"amount":   mod.Price,
	}
	return c.do(ctx, http.MethodPost, url, body, nil)
}

// ApplyDiscount submits an order-level discount. The payload always carries a
// pre-computed amount: the platform reports zero for percentage-only discounts
// when read back, so Amount is mandatory even for percentage discounts.
func (c *Client) ApplyDiscount(ctx context.Context, orderID string, d models.DiscountApplication) error {
	if d.Amount == 0 {
		return fmt.Errorf("discount %q missing pre-computed amount", d.Name)
	}
	url := c.merchantPath(fmt.Sprintf("/orders/%s/discounts", orderID))
	return c.do(ctx, http.MethodPost, url, discountBody(d), nil)
}

func (c *Client) ApplyLineItemDiscount(ctx context.Context, orderID, lineItemID string, d models.DiscountApplication) error {
	if d.Amount == 0 {
		return fmt.Errorf("discount %q missing pre-computed amount", d.Name)
	}
	url := c.merchantPath(fmt.Sprintf("/orders/%s/line_items/%s/discounts", orderID, lineItemID))
	return c.do(ctx, http.MethodPost, url, discountBody(d), nil)
}

func discountBody(d models.DiscountApplication) map[string]interface{} {
	body := map[string]interface{}{
		"name":   d.Name,
		"amount": d.Amount,
	}
	if d.DiscountID != "" {
		body["discount"] = map[string]string{"id": d.DiscountID}
	}
	if d.Percentage != 0 {
		body["percentage"] = d.Percentage
	}
	return body
}

func (c *Client) ApplyServiceCharge(ctx context.Context, orderID, name string, amount int64) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s/service_charge", orderID))
	return c.do(ctx, http.MethodPost, url, map[string]interface{}{"name": name, "amount": amount}, nil)
}

func (c *Client) UpdateTotal(ctx context.Context, orderID string, total int64) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s", orderID))
	return c.do(ctx, http.MethodPost, url, map[string]int64{"total": total}, nil)
}

func (c *Client) UpdateState(ctx context.Context, orderID, state string) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s", orderID))
	return c.do(ctx, http.MethodPost, url, map[string]string{"state": state}, nil)
}

func (c *Client) CalculateTotal(ctx context.Context, orderID string) (int64, error) {
	var out struct {
		Total int64 `json:"total"`
	}
	url := c.merchantPath(fmt.Sprintf("/orders/%s?expand=lineItems,discounts", orderID))
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}
