package clover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// Client is a thin wrapper over the sandbox platform's REST API. One method
// per endpoint, no logic beyond marshaling; all engineering substance lives in
// the simulator package.
type Client struct {
	baseURL        string
	merchantID     string
	token          string
	ecommerceToken string
	http           *http.Client
}

func NewClient(cfg models.APIConfig) *Client {
	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		merchantID:     cfg.MerchantID,
		token:          cfg.APIToken,
		ecommerceToken: cfg.EcommerceToken,
		http:           &http.Client{Timeout: timeout},
	}
}

func (c *Client) merchantPath(suffix string) string {
	return fmt.Sprintf("%s/v3/merchants/%s%s", c.baseURL, c.merchantID, suffix)
}

// do issues one request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, string(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, url, err)
	}
	return nil
}

// elements mirrors the platform's standard list envelope.
type elements[T any] struct {
	Elements []T `json:"elements"`
}

func listAll[T any](ctx context.Context, c *Client, suffix string) ([]T, error) {
	var env elements[T]
	if err := c.do(ctx, http.MethodGet, c.merchantPath(suffix), nil, &env); err != nil {
		return nil, err
	}
	return env.Elements, nil
}
