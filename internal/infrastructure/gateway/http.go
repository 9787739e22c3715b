// Package gateway holds the HTTP clients for the external payment-session
// collaborator. The collaborator's own wire protocol with the card and
// wallet providers is opaque here: the clients only ask for "a redirect URL
// for amount X tied to order Y".
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/payment"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type sessionResponse struct {
	RedirectURL string `json:"redirect_url"`
	ApproveURL  string `json:"approve_url"`
	Error       string `json:"error"`
}

// Client talks to the payment-session collaborator over JSON/HTTP. A
// timeout or connection failure is reported the same way as an explicit
// provider error.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSession implements payment.CardGateway.
func (c *Client) CreateSession(ctx context.Context, orderID string, lines []payment.SessionLine) (string, error) {
	body := map[string]any{
		"order_id":   orderID,
		"line_items": lines,
	}
	resp, err := c.post(ctx, "/card/sessions", body)
	if err != nil {
		return "", err
	}
	return resp.RedirectURL, nil
}

// CreateOrder implements payment.WalletGateway.
func (c *Client) CreateOrder(ctx context.Context, orderID string, amount decimal.Decimal) (string, error) {
	body := map[string]any{
		"order_id": orderID,
		"amount":   amount,
	}
	resp, err := c.post(ctx, "/wallet/orders", body)
	if err != nil {
		return "", err
	}
	return resp.ApproveURL, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*sessionResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer httpResp.Body.Close()

	var resp sessionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrGatewayUnavailable, err)
	}
	if httpResp.StatusCode != http.StatusOK || resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, resp.Error)
	}
	return &resp, nil
}
