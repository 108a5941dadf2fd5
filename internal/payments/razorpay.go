package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

// RazorpayOrders creates and verifies orders against the Razorpay API.
type RazorpayOrders struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayOrders(keyID, keySecret string) *RazorpayOrders {
	return &RazorpayOrders{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (r *RazorpayOrders) Create(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	_ = ctx // the razorpay client does not take a context
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}
	status, _ := body["status"].(string)
	return &Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Status:   status,
		KeyID:    r.keyID,
	}, nil
}

// Verify checks the checkout callback signature: HMAC-SHA256 of
// "<order_id>|<payment_id>" under the key secret, hex encoded.
func (r *RazorpayOrders) Verify(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, r.keySecret)
}

// VerifySignature implements the Razorpay checkout signature scheme.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Gateway is the hosted-widget payment strategy: Collect creates an order
// and returns it as pending; the widget later reports success (verified
// signature) or dismissal.
type Gateway struct {
	orders OrderService
	keyID  string
}

func NewGateway(orders OrderService, keyID string) *Gateway {
	return &Gateway{orders: orders, keyID: keyID}
}

func (g *Gateway) Collect(ctx context.Context, req Request) (Result, error) {
	order, err := g.orders.Create(ctx, req.Amount, req.Currency, req.Receipt)
	if err != nil {
		return Result{}, err
	}
	return Result{Pending: &Pending{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    g.keyID,
	}}, nil
}
