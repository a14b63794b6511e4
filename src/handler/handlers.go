package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/zenkart/checkout/src/configuration"
	"github.com/zenkart/checkout/src/domain"
	"github.com/zenkart/checkout/src/messaging"
	"github.com/zenkart/checkout/src/ratelimit"
	"github.com/zenkart/checkout/src/repository"
	"github.com/zenkart/checkout/src/verification"
)

const (
	verifyMaxAttempts = 5
	verifyWindow      = 10 * time.Minute
)

// OrderGateway is the slice of the gateway client the handlers need.
type OrderGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (domain.GatewayOrder, error)
}

type Deps struct {
	Credentials configuration.Credentials
	Gateway     OrderGateway
	Orders      repository.OrderRepository
	Events      messaging.OrderEventQueue
	Verifier    *verification.Service
	Limiter     ratelimit.Limiter
}

func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
	})

	app.Use(recoverer.New())
	// Permissive by design: the storefront may be served from any origin.
	// The middleware also answers OPTIONS preflights before any handler runs.
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	h := &handlers{deps}

	app.Post("/orders", h.createOrder)
	app.Post("/payment-outcomes", h.recordOutcome)
	app.Get("/orders-summary", h.ordersSummary)
	app.Post("/purge-orders", h.purgeOrders)
	app.Post("/verify/upi", h.verifyUPI)
	app.Post("/verify/mobile", h.verifyMobile)

	return app
}

type handlers struct {
	Deps
}

func (h *handlers) createOrder(c fiber.Ctx) error {
	var req domain.OrderRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}
	if !h.Credentials.Configured() {
		// Never tell the client which credential is missing.
		log.Println("[orders] gateway credentials not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment service configuration error"})
	}

	currency := req.Currency
	if currency == "" {
		currency = configuration.DEFAULT_CURRENCY
	}
	amount := int64(math.Round(req.Amount * 100))
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())

	order, err := h.Gateway.CreateOrder(c.RequestCtx(), amount, currency, receipt)
	if err != nil {
		// Raw gateway errors stay in the server log.
		log.Printf("[orders] gateway order creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment order"})
	}

	h.publish(c.RequestCtx(), domain.OrderEvent{
		OrderID:    order.ID,
		Receipt:    receipt,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Status:     domain.OrderStatusCreated,
		OccurredAt: time.Now().UTC(),
	})

	return c.Status(fiber.StatusOK).JSON(domain.OrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    h.Credentials.KeyID,
	})
}

type outcomeRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func (h *handlers) recordOutcome(c fiber.Ctx) error {
	var req outcomeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	switch req.Status {
	case domain.OrderStatusPaid, domain.OrderStatusFailed, domain.OrderStatusCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}

	h.publish(c.RequestCtx(), domain.OrderEvent{
		OrderID:    req.OrderID,
		Status:     req.Status,
		OccurredAt: time.Now().UTC(),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// publish hands the event to the queue when one is wired, otherwise records
// synchronously. Recording is bookkeeping; failures never fail the request.
func (h *handlers) publish(ctx context.Context, event domain.OrderEvent) {
	if h.Events != nil {
		if err := h.Events.Produce(ctx, event); err != nil {
			log.Printf("[orders] producing event for %s failed: %v", event.OrderID, err)
		}
		return
	}
	if h.Orders == nil {
		return
	}
	var err error
	if event.Status == domain.OrderStatusCreated {
		err = h.Orders.Record(ctx, domain.Order{
			OrderID:   event.OrderID,
			Receipt:   event.Receipt,
			Amount:    event.Amount,
			Currency:  event.Currency,
			Status:    event.Status,
			CreatedAt: event.OccurredAt,
		})
	} else {
		err = h.Orders.MarkOutcome(ctx, event.OrderID, event.Status)
	}
	if err != nil {
		log.Printf("[orders] recording %s failed: %v", event.OrderID, err)
	}
}

func (h *handlers) ordersSummary(c fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	var from time.Time
	var to time.Time
	var err error
	if fromStr == "" {
		from = time.Time{}
	} else {
		from, err = time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from datetime"})
		}
	}
	if toStr == "" {
		to = time.Now().UTC()
	} else {
		to, err = time.Parse(time.RFC3339, toStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to datetime"})
		}
	}
	summary, err := h.Orders.GetSummary(c.RequestCtx(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *handlers) purgeOrders(c fiber.Ctx) error {
	if err := h.Orders.Purge(c.RequestCtx()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type upiRequest struct {
	VPA string `json:"vpa"`
}

type mobileRequest struct {
	Number string `json:"number"`
}

func (h *handlers) verifyUPI(c fiber.Ctx) error {
	if denied := h.throttle(c, "verify:upi"); denied != nil {
		return denied
	}
	var req upiRequest
	_ = json.Unmarshal(c.Body(), &req)
	return respondVerification(c, h.Verifier.VerifyUPI(c.RequestCtx(), req.VPA))
}

func (h *handlers) verifyMobile(c fiber.Ctx) error {
	if denied := h.throttle(c, "verify:mobile"); denied != nil {
		return denied
	}
	var req mobileRequest
	_ = json.Unmarshal(c.Body(), &req)
	return respondVerification(c, h.Verifier.VerifyMobile(c.RequestCtx(), req.Number))
}

// throttle returns a non-nil handler result when the request was denied.
func (h *handlers) throttle(c fiber.Ctx, operation string) error {
	if h.Limiter == nil {
		return nil
	}
	key := operation + ":" + c.IP()
	allowed, err := h.Limiter.Check(c.RequestCtx(), key, verifyMaxAttempts, verifyWindow)
	if err != nil {
		log.Printf("[verify] rate limit check failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	if allowed {
		return nil
	}
	cooldown, err := h.Limiter.RemainingCooldown(c.RequestCtx(), key, verifyWindow)
	if err != nil {
		cooldown = verifyWindow
	}
	minutes := ratelimit.CooldownMinutes(cooldown)
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error": fmt.Sprintf("Too many attempts. Try again in %d minutes.", minutes),
	})
}

func respondVerification(c fiber.Ctx, res domain.VerificationResult) error {
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
