package payments

import "context"

// Fixed business constants for the consultation fee.
const (
	// FeePaise is the consultation fee in the currency's minor unit (₹500).
	FeePaise int64 = 50000

	Currency = "INR"
)

// Request carries what a strategy needs to collect the consultation fee,
// including identity fields used to pre-fill the hosted widget.
type Request struct {
	Amount   int64
	Currency string
	Receipt  string
	Name     string
	Email    string
	Contact  string
}

// Outcome is a completed payment. Reference becomes the booking's
// payment reference.
type Outcome struct {
	Reference string
}

// Pending describes an order awaiting the external widget's callback.
type Pending struct {
	OrderID  string
	Amount   int64
	Currency string
	KeyID    string
}

// Result is what a strategy returns from Collect: exactly one of Outcome
// (synchronous success) or Pending (asynchronous, completed later through
// the verification callback) is set.
type Result struct {
	Outcome *Outcome
	Pending *Pending
}

// Collaborator is a payment strategy. The mock strategy completes
// synchronously; the gateway strategy opens an out-of-process widget and
// reports through exactly one of the success or dismissal callbacks.
type Collaborator interface {
	Collect(ctx context.Context, req Request) (Result, error)
}

// Order is a gateway order descriptor handed to the payment widget.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	KeyID    string `json:"key_id,omitempty"`
}

// OrderService creates gateway orders and verifies payment callbacks.
type OrderService interface {
	Create(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	Verify(orderID, paymentID, signature string) bool
}
