package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zenkart/checkout/src/configuration"
	"github.com/zenkart/checkout/src/domain"
)

type CreateOrderInput struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// APIError carries the gateway's raw response. It is logged server-side only
// and never forwarded to a client.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway responded %d: %s", e.StatusCode, e.Body)
}

func NewClient(baseURL string, creds configuration.Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = configuration.DEFAULT_HTTP_TIMEOUT
	}
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		client:  &http.Client{Timeout: timeout},
	}
}

// Client talks to the payment gateway's REST order API using basic auth built
// from the key pair. Every call carries the client timeout as a deadline.
type Client struct {
	baseURL string
	creds   configuration.Credentials
	client  *http.Client
}

func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (domain.GatewayOrder, error) {
	input := CreateOrderInput{
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	}
	body, err := json.Marshal(input)
	if err != nil {
		return domain.GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return domain.GatewayOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.creds.KeyID, c.creds.KeySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.GatewayOrder{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.GatewayOrder{}, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var order domain.GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return domain.GatewayOrder{}, err
	}
	return order, nil
}
