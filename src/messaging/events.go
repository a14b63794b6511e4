package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zenkart/checkout/src/domain"
)

const eventQueue = "order_events"

func NewOrderEventQueue(client *redis.Client) OrderEventQueue {
	return &orderEventQueue{client}
}

type orderEventQueue struct {
	client *redis.Client
}

type OrderEventQueue interface {
	Produce(ctx context.Context, e domain.OrderEvent) error
	Consume(ctx context.Context) (domain.OrderEvent, error)
}

func (q *orderEventQueue) Produce(ctx context.Context, e domain.OrderEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, eventQueue, data).Err()
}

func (q *orderEventQueue) Consume(ctx context.Context) (domain.OrderEvent, error) {
	res, err := q.client.BLPop(ctx, 0*time.Second, eventQueue).Result()
	if err != nil {
		return domain.OrderEvent{}, err
	}

	var e domain.OrderEvent
	if err := json.Unmarshal([]byte(res[1]), &e); err != nil {
		return domain.OrderEvent{}, err
	}

	return e, nil
}
