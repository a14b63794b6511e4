package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zenkart/checkout/src/domain"
)

func NewRedisOrderRepository(client *redis.Client) OrderRepository {
	return &redisOrderRepository{client}
}

type redisOrderRepository struct {
	client *redis.Client
}

func orderKey(orderID string) string {
	return fmt.Sprintf("order:%s", orderID)
}

func (r *redisOrderRepository) Record(ctx context.Context, o domain.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, orderKey(o.OrderID), data, 0).Err()
}

func (r *redisOrderRepository) MarkOutcome(ctx context.Context, orderID, status string) error {
	val, err := r.client.Get(ctx, orderKey(orderID)).Result()
	if err == redis.Nil {
		return r.Record(ctx, domain.Order{OrderID: orderID, Status: status})
	}
	if err != nil {
		return err
	}
	var o domain.Order
	if err := json.Unmarshal([]byte(val), &o); err != nil {
		return err
	}
	o.Status = status
	return r.Record(ctx, o)
}

func (r *redisOrderRepository) GetSummary(ctx context.Context, from, to time.Time) (domain.OrderSummary, error) {
	var summary domain.OrderSummary
	iter := r.client.Scan(ctx, 0, "order:*", 0).Iterator()
	for iter.Next(ctx) {
		val, err := r.client.Get(ctx, iter.Val()).Result()
		if err != nil {
			continue
		}
		var o domain.Order
		if err := json.Unmarshal([]byte(val), &o); err != nil {
			continue
		}
		accumulate(&summary, o, from, to)
	}
	if err := iter.Err(); err != nil {
		return domain.OrderSummary{}, err
	}
	return summary, nil
}

func (r *redisOrderRepository) Purge(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "order:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
