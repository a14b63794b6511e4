package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zenkart/checkout/src/configuration"
	"github.com/zenkart/checkout/src/domain"
)

const themeColor = "#0F766E"

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// OrderCreator requests a server-created order for a checkout attempt.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (domain.OrderResponse, error)
}

// SessionConfig is everything the gateway's checkout UI needs. Key is the
// server-issued public key; no secret ever reaches this struct.
type SessionConfig struct {
	Key        string
	OrderID    string
	Amount     int64
	Currency   string
	Name       string
	Email      string
	Contact    string
	ThemeColor string
}

// SessionOpener opens the gateway's checkout session and reports how it
// ended. Implementations adapt the SDK's callback style into the outcome
// value at this boundary only.
type SessionOpener interface {
	Open(ctx context.Context, cfg SessionConfig) domain.PaymentOutcome
}

// Availability answers whether the gateway can be reached at all.
type Availability interface {
	Ready() bool
}

// Notifier surfaces one user-facing message per checkout result.
// Fire-and-forget; nothing is returned.
type Notifier interface {
	Notify(kind, title, message string)
}

func NewInitiator(availability Availability, orders OrderCreator, session SessionOpener, notify Notifier) *Initiator {
	return &Initiator{
		availability: availability,
		orders:       orders,
		session:      session,
		notify:       notify,
	}
}

// Initiator orchestrates one checkout attempt: gateway availability, server
// order creation, then the gateway session. Every failure path funnels into
// a failure outcome plus exactly one notification; retrying is the caller's
// decision.
type Initiator struct {
	availability Availability
	orders       OrderCreator
	session      SessionOpener
	notify       Notifier
}

func (i *Initiator) Initiate(ctx context.Context, opts domain.CheckoutOptions) domain.PaymentOutcome {
	attemptID := uuid.NewString()

	if !i.availability.Ready() {
		i.notify.Notify("error", "Payment Failed", "Payment gateway failed to load. Check your connection.")
		return domain.PaymentOutcome{
			Status:    domain.OutcomeFailure,
			AttemptID: attemptID,
			Err:       ErrGatewayUnavailable,
		}
	}

	currency := opts.Currency
	if currency == "" {
		currency = configuration.DEFAULT_CURRENCY
	}

	order, err := i.orders.CreateOrder(ctx, opts.Amount, currency)
	if err != nil {
		i.notify.Notify("error", "Payment Failed", "Unable to initiate payment. Please try again.")
		return domain.PaymentOutcome{
			Status:    domain.OutcomeFailure,
			AttemptID: attemptID,
			Err:       fmt.Errorf("create order: %w", err),
		}
	}

	outcome := i.session.Open(ctx, SessionConfig{
		Key:        order.KeyID,
		OrderID:    order.OrderID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Name:       opts.Customer.Name,
		Email:      opts.Customer.Email,
		Contact:    opts.Customer.Contact,
		ThemeColor: themeColor,
	})
	outcome.AttemptID = attemptID
	outcome.OrderID = order.OrderID

	switch outcome.Status {
	case domain.OutcomeSuccess:
		i.notify.Notify("success", "Payment Successful", "Your order has been placed.")
	case domain.OutcomeCancelled:
		// Closing the modal is a choice, not an error.
		i.notify.Notify("info", "Payment Cancelled", "You cancelled the payment.")
	default:
		i.notify.Notify("error", "Payment Failed", "The payment could not be completed.")
	}
	return outcome
}
