package clover

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/lucsky/cuid"
)

func (c *Client) ProcessPayment(ctx context.Context, orderID, tenderID string, amount, tip, tax int64) (string, error) {
	body := map[string]interface{}{
		"tender":    map[string]string{"id": tenderID},
		"amount":    amount,
		"tipAmount": tip,
		"taxAmount": tax,
	}
	var ref struct {
		ID string `json:"id"`
	}
	url := c.merchantPath(fmt.Sprintf("/orders/%s/payments", orderID))
	if err := c.do(ctx, http.MethodPost, url, body, &ref); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// ProcessSplitPayment settles one payment per split share, sequentially. The
// last share absorbs the remainder so the shares always sum to the full
// amount. Tip and tax ride on the first share only.
func (c *Client) ProcessSplitPayment(ctx context.Context, orderID string, splits []models.PaymentSplit, total, tip, tax int64) ([]models.Payment, error) {
	if len(splits) == 0 {
		return nil, fmt.Errorf("split payment for order %s has no splits", orderID)
	}

	payments := make([]models.Payment, 0, len(splits))
	var settled int64
	for i, split := range splits {
		share := total * int64(split.Percentage) / 100
		if i == len(splits)-1 {
			share = total - settled
		}
		settled += share

		shareTip, shareTax := int64(0), int64(0)
		if i == 0 {
			shareTip, shareTax = tip, tax
		}
		id, err := c.ProcessPayment(ctx, orderID, split.TenderID, share, shareTip, shareTax)
		if err != nil {
			return payments, fmt.Errorf("split share %d/%d: %w", i+1, len(splits), err)
		}
		payments = append(payments, models.Payment{
			ID:         id,
			TenderID:   split.TenderID,
			Label:      split.Label,
			Amount:     share,
			TipAmount:  shareTip,
			TaxAmount:  shareTax,
			Percentage: split.Percentage,
		})
	}
	return payments, nil
}

// ProcessCardPayment tokenizes a test card against the card-processing API and
// charges the token.
func (c *Client) ProcessCardPayment(ctx context.Context, orderID string, amount int64) (string, error) {
	if c.ecommerceToken == "" {
		return "", fmt.Errorf("card processing not configured")
	}

	tokenBody := map[string]interface{}{
		"card": map[string]string{
			"number":    "4005562231212123",
			"exp_month": "12",
			"exp_year":  "2030",
			"cvv":       "123",
		},
	}
	var token struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/tokens", tokenBody, &token); err != nil {
		return "", fmt.Errorf("tokenize card: %w", err)
	}

	chargeBody := map[string]interface{}{
		"source":   token.ID,
		"amount":   amount,
		"currency": "usd",
		"order":    orderID,
		// Idempotency key so sandbox retries never double-charge.
		"external_reference_id": cuid.New(),
	}
	var charge struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/charges", chargeBody, &charge); err != nil {
		return "", fmt.Errorf("charge card: %w", err)
	}
	return charge.ID, nil
}

func (c *Client) CardProcessingConfigured() bool {
	return c.ecommerceToken != ""
}

func (c *Client) CreateFullRefund(ctx context.Context, orderID, paymentID, reason string) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s/payments/%s/refunds", orderID, paymentID))
	return c.do(ctx, http.MethodPost, url, map[string]string{"reason": reason}, nil)
}

func (c *Client) CreatePartialRefund(ctx context.Context, orderID, paymentID string, amount int64, reason string) error {
	url := c.merchantPath(fmt.Sprintf("/orders/%s/payments/%s/refunds", orderID, paymentID))
	body := map[string]interface{}{"amount": amount, "reason": reason}
	return c.do(ctx, http.MethodPost, url, body, nil)
}

func (c *Client) GiftCards(ctx context.Context) ([]*models.GiftCard, error) {
	return listAll[*models.GiftCard](ctx, c, "/gift_cards?limit=100")
}

func (c *Client) Redeem(ctx context.Context, cardID string, amount int64) (*models.Redemption, error) {
	var redemption models.Redemption
	url := c.merchantPath(fmt.Sprintf("/gift_cards/%s/redeem", cardID))
	if err := c.do(ctx, http.MethodPost, url, map[string]int64{"amount": amount}, &redemption); err != nil {
		return nil, err
	}
	return &redemption, nil
}

func (c *Client) RecordCashPayment(ctx context.Context, orderID, employeeID string, amount int64) error {
	body := map[string]interface{}{
		"type":     "TRANSACTION_CASH",
		"amount":   amount,
		"employee": map[string]string{"id": employeeID},
		"note":     fmt.Sprintf("simulated cash payment for order %s", orderID),
	}
	return c.do(ctx, http.MethodPost, c.merchantPath("/cash_events"), body, nil)
}
