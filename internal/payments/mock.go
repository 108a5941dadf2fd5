package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reference prefixes used by the mock strategy. Tests and the admin sheet
// rely on these being stable.
const (
	MockPaymentPrefix = "pay_mock_"
	MockOrderPrefix   = "order_mock_"
)

// Mock is the no-gateway payment strategy: it synchronously marks the
// payment completed with a locally generated reference. Always succeeds.
// Selected when no real Razorpay key is configured.
type Mock struct {
	Clock func() time.Time
}

func NewMock() *Mock {
	return &Mock{Clock: time.Now}
}

func (m *Mock) Collect(ctx context.Context, req Request) (Result, error) {
	_ = ctx
	ref := fmt.Sprintf("%s%d", MockPaymentPrefix, m.Clock().UnixMilli())
	return Result{Outcome: &Outcome{Reference: ref}}, nil
}

// MockOrders is the order-service counterpart for deployments without
// gateway credentials: orders carry a recognizable mock id and
// verification accepts any callback for a mock order.
type MockOrders struct{}

func (MockOrders) Create(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	_ = ctx
	return &Order{
		ID:       MockOrderPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		Amount:   amount,
		Currency: currency,
		Status:   "created",
	}, nil
}

func (MockOrders) Verify(orderID, paymentID, signature string) bool {
	return strings.HasPrefix(orderID, MockOrderPrefix)
}
