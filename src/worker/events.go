package worker

import (
	"context"
	"log"

	"github.com/zenkart/checkout/src/domain"
	"github.com/zenkart/checkout/src/messaging"
	"github.com/zenkart/checkout/src/repository"
)

// StartOrderEventWorker consumes order events and records them against the
// order store. Runs until the context is cancelled; consume and record errors
// are logged and the loop continues.
func StartOrderEventWorker(ctx context.Context, queue messaging.OrderEventQueue, repo repository.OrderRepository) {
	for {
		event, err := queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[worker] consume failed: %v", err)
			continue
		}
		if err := handleEvent(ctx, repo, event); err != nil {
			log.Printf("[worker] recording order %s failed: %v", event.OrderID, err)
		}
	}
}

func handleEvent(ctx context.Context, repo repository.OrderRepository, event domain.OrderEvent) error {
	if event.Status == domain.OrderStatusCreated {
		return repo.Record(ctx, domain.Order{
			OrderID:   event.OrderID,
			Receipt:   event.Receipt,
			Amount:    event.Amount,
			Currency:  event.Currency,
			Status:    event.Status,
			CreatedAt: event.OccurredAt,
		})
	}
	return repo.MarkOutcome(ctx, event.OrderID, event.Status)
}
