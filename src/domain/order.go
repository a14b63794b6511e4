package domain

import "time"

// Amounts are in minor units (paise for INR) to avoid floating-point money.

type Order struct {
	OrderID   string    `json:"orderId"`
	Receipt   string    `json:"receipt"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	OrderStatusCreated   = "created"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
)

// GatewayOrder is the gateway's view of an order, as returned by its REST API.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type OrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type OrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

type OrderEvent struct {
	OrderID    string    `json:"orderId"`
	Receipt    string    `json:"receipt"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

type OrderSummary struct {
	Created   SummaryItem `json:"created"`
	Paid      SummaryItem `json:"paid"`
	Failed    SummaryItem `json:"failed"`
	Cancelled SummaryItem `json:"cancelled"`
}

type SummaryItem struct {
	TotalAmount   int64 `json:"totalAmount"`
	TotalRequests int   `json:"totalRequests"`
}
