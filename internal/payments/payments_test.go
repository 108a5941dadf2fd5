package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCollectAlwaysSucceeds(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	m := &Mock{Clock: func() time.Time { return at }}

	res, err := m.Collect(context.Background(), Request{Amount: FeePaise, Currency: Currency})
	require.NoError(t, err)
	require.NotNil(t, res.Outcome)
	assert.Nil(t, res.Pending)
	assert.Equal(t, "pay_mock_"+strconv.FormatInt(at.UnixMilli(), 10), res.Outcome.Reference)
}

func TestMockOrders(t *testing.T) {
	order, err := MockOrders{}.Create(context.Background(), FeePaise, Currency, "apt_1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.ID, MockOrderPrefix))
	assert.Equal(t, FeePaise, order.Amount)
	assert.Equal(t, "created", order.Status)

	assert.True(t, MockOrders{}.Verify(order.ID, "pay_x", "sig"))
	assert.False(t, MockOrders{}.Verify("order_real_abc", "pay_x", "sig"))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_9A33XWu170gUtm"
	paymentID := "pay_29QQoUBi66xm2f"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifySignature(orderID, paymentID, signature, secret))
	assert.False(t, VerifySignature(orderID, paymentID, signature, "other_secret"))
	assert.False(t, VerifySignature(orderID, "pay_tampered", signature, secret))
	assert.False(t, VerifySignature(orderID, paymentID, "deadbeef", secret))
}

type stubOrders struct {
	created []Request
	fail    error
}

func (s *stubOrders) Create(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.created = append(s.created, Request{Amount: amount, Currency: currency, Receipt: receipt})
	return &Order{ID: "order_test_1", Amount: amount, Currency: currency, Status: "created"}, nil
}

func (s *stubOrders) Verify(orderID, paymentID, signature string) bool { return false }

func TestGatewayCollectReturnsPendingOrder(t *testing.T) {
	orders := &stubOrders{}
	g := NewGateway(orders, "rzp_test_key")

	res, err := g.Collect(context.Background(), Request{Amount: FeePaise, Currency: Currency, Receipt: "apt_7"})
	require.NoError(t, err)
	assert.Nil(t, res.Outcome)
	require.NotNil(t, res.Pending)
	assert.Equal(t, "order_test_1", res.Pending.OrderID)
	assert.Equal(t, "rzp_test_key", res.Pending.KeyID)
	require.Len(t, orders.created, 1)
	assert.Equal(t, "apt_7", orders.created[0].Receipt)
}
