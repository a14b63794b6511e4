package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/zenkart/checkout/src/configuration"
	"github.com/zenkart/checkout/src/configuration/database/redis"
	"github.com/zenkart/checkout/src/gateway"
	"github.com/zenkart/checkout/src/handler"
	"github.com/zenkart/checkout/src/messaging"
	"github.com/zenkart/checkout/src/ratelimit"
	"github.com/zenkart/checkout/src/repository"
	"github.com/zenkart/checkout/src/verification"
	"github.com/zenkart/checkout/src/worker"
)

const verificationLatency = 800 * time.Millisecond

func main() {
	godotenv.Load()
	cfg := configuration.Load()

	client, err := redis.NewRedisConnection(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("Error trying to connect to redis, error=%s \n", err.Error())
		return
	}

	orders := repository.NewRedisOrderRepository(client)
	events := messaging.NewOrderEventQueue(client)
	go worker.StartOrderEventWorker(context.Background(), events, orders)

	app := handler.New(handler.Deps{
		Credentials: cfg.Credentials,
		Gateway:     gateway.NewClient(cfg.GatewayURL, cfg.Credentials, configuration.DEFAULT_HTTP_TIMEOUT),
		Orders:      orders,
		Events:      events,
		Verifier:    verification.NewService(verification.NewDemoResolver(), verificationLatency),
		Limiter:     ratelimit.NewRedisLimiter(client),
	})

	log.Fatal(app.Listen(cfg.Port))
}
