package repository

import (
	"context"
	"time"

	"github.com/zenkart/checkout/src/configuration/storage"
	"github.com/zenkart/checkout/src/domain"
)

type OrderRepository interface {
	Record(ctx context.Context, o domain.Order) error
	MarkOutcome(ctx context.Context, orderID, status string) error
	GetSummary(ctx context.Context, from, to time.Time) (domain.OrderSummary, error)
	Purge(ctx context.Context) error
}

func NewOrderRepository(storage *storage.InMemoryStorage) OrderRepository {
	return &orderRepository{storage}
}

type orderRepository struct {
	storage *storage.InMemoryStorage
}

func (r *orderRepository) Record(_ context.Context, o domain.Order) error {
	r.storage.Set(o.OrderID, o)
	return nil
}

func (r *orderRepository) MarkOutcome(_ context.Context, orderID, status string) error {
	r.storage.Update(orderID, func(current any, exists bool) any {
		o, ok := current.(domain.Order)
		if !exists || !ok {
			return domain.Order{OrderID: orderID, Status: status}
		}
		o.Status = status
		return o
	})
	return nil
}

func (r *orderRepository) GetSummary(_ context.Context, from, to time.Time) (domain.OrderSummary, error) {
	var summary domain.OrderSummary
	for _, item := range r.storage.All() {
		o, ok := item.(domain.Order)
		if !ok {
			continue
		}
		accumulate(&summary, o, from, to)
	}
	return summary, nil
}

func (r *orderRepository) Purge(_ context.Context) error {
	r.storage.Clear()
	return nil
}

func accumulate(summary *domain.OrderSummary, o domain.Order, from, to time.Time) {
	if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
		return
	}
	var item *domain.SummaryItem
	switch o.Status {
	case domain.OrderStatusPaid:
		item = &summary.Paid
	case domain.OrderStatusFailed:
		item = &summary.Failed
	case domain.OrderStatusCancelled:
		item = &summary.Cancelled
	default:
		item = &summary.Created
	}
	item.TotalAmount += o.Amount
	item.TotalRequests++
}
