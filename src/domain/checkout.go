package domain

type CheckoutOptions struct {
	Amount   float64
	Currency string
	Customer Customer
}

type Customer struct {
	Name    string
	Email   string
	Contact string
}

type OutcomeStatus string

const (
	OutcomeSuccess   OutcomeStatus = "success"
	OutcomeFailure   OutcomeStatus = "failure"
	OutcomeCancelled OutcomeStatus = "cancelled"
)

// PaymentOutcome is the terminal result of one checkout attempt.
type PaymentOutcome struct {
	Status    OutcomeStatus
	AttemptID string
	OrderID   string
	PaymentID string
	Err       error
}
