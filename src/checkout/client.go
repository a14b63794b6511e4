package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zenkart/checkout/src/domain"
)

func NewOrdersClient(endpointURL string) *OrdersClient {
	return &OrdersClient{
		endpointURL: endpointURL,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// OrdersClient is the function-invocation client for the order endpoint:
// send JSON, get JSON or an error.
type OrdersClient struct {
	endpointURL string
	client      *http.Client
}

func (c *OrdersClient) CreateOrder(ctx context.Context, amount float64, currency string) (domain.OrderResponse, error) {
	body, err := json.Marshal(domain.OrderRequest{Amount: amount, Currency: currency})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewBuffer(body))
	if err != nil {
		return domain.OrderResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != "" {
			return domain.OrderResponse{}, fmt.Errorf("order endpoint: %s", failure.Error)
		}
		return domain.OrderResponse{}, fmt.Errorf("order endpoint responded %d", resp.StatusCode)
	}

	var order domain.OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return domain.OrderResponse{}, err
	}
	return order, nil
}
