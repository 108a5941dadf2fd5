package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-booking-service/internal/notify"
	"clinic-booking-service/internal/payments"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // Monday noon

type fakeDispatcher struct {
	payloads []notify.Payload
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, p notify.Payload) {
	f.payloads = append(f.payloads, p)
}

type asyncPayer struct{}

func (asyncPayer) Collect(ctx context.Context, req payments.Request) (payments.Result, error) {
	return payments.Result{Pending: &payments.Pending{
		OrderID:  "order_test_9",
		Amount:   req.Amount,
		Currency: req.Currency,
		KeyID:    "rzp_test_key",
	}}, nil
}

type failingPayer struct{}

func (failingPayer) Collect(ctx context.Context, req payments.Request) (payments.Result, error) {
	return payments.Result{}, errors.New("gateway unreachable")
}

func newTestWizard(payer payments.Collaborator, d Dispatcher) *Wizard {
	w := NewWizard(payer, d, zap.NewNop())
	w.clock = func() time.Time { return testNow }
	return w
}

func tomorrow() time.Time { return testNow.AddDate(0, 0, 1) }

func TestAdvanceWithoutSlotLeavesStateUnchanged(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})

	err := w.SelectSlot(time.Time{}, "")
	assert.Equal(t, ErrSelectDateTime, err)
	assert.Equal(t, StateSelectSlot, w.State())

	err = w.SelectSlot(tomorrow(), "")
	assert.Equal(t, ErrSelectDateTime, err)
	assert.Equal(t, StateSelectSlot, w.State())
}

func TestSelectSlotRejectsIneligibleDates(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})

	assert.Equal(t, ErrSelectDateTime, w.SelectSlot(testNow.AddDate(0, 0, -1), "09:00 AM"))

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ErrSelectDateTime, w.SelectSlot(sunday, "09:00 AM"))
}

func TestSelectSlotRejectsLabelOutsideGeneratedSet(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})
	assert.Equal(t, ErrSelectDateTime, w.SelectSlot(tomorrow(), "09:10 AM"))
	assert.Equal(t, StateSelectSlot, w.State())
}

func TestSelectSlotRejectsElapsedSlotToday(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})
	// 09:00 AM is already past at noon.
	assert.Equal(t, ErrSelectDateTime, w.SelectSlot(testNow, "09:00 AM"))
	// An evening slot on the same day is still bookable.
	assert.NoError(t, w.SelectSlot(testNow, "05:00 PM"))
}

func TestEndToEndMockBooking(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	mock := payments.NewMock()
	mock.Clock = func() time.Time { return testNow }
	w := newTestWizard(mock, dispatcher)

	require.NoError(t, w.SelectSlot(tomorrow(), "09:00 AM"))
	require.Equal(t, StateEnterDetails, w.State())

	require.NoError(t, w.EnterDetails(Details{
		Name:  "Test Patient",
		Email: "test@example.com",
		Phone: "9876543210",
	}))
	require.Equal(t, StatePay, w.State())

	pending, err := w.Pay(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pending)

	assert.Equal(t, StateConfirmed, w.State())
	draft := w.Draft()
	assert.Equal(t, PaymentCompleted, draft.PaymentStatus)
	assert.True(t, strings.HasPrefix(draft.ID, IDPrefix))
	assert.True(t, strings.HasPrefix(draft.PaymentReference, payments.MockPaymentPrefix))
	assert.Equal(t, DefaultReason, draft.Reason)
	assert.False(t, w.Processing())

	require.Len(t, dispatcher.payloads, 1, "persistence payload sent exactly once")
	p := dispatcher.payloads[0]
	assert.Equal(t, draft.ID, p.ID)
	assert.Equal(t, "2026-03-03", p.AppointmentDate)
	assert.Equal(t, "09:00 AM", p.AppointmentTime)
	assert.Equal(t, "completed", p.PaymentStatus)
}

func TestValidationFailureBlocksDetailsStep(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})
	require.NoError(t, w.SelectSlot(tomorrow(), "09:00 AM"))

	err := w.EnterDetails(Details{Name: "X", Email: "test@example.com", Phone: "1234567890"})
	assert.Equal(t, ErrInvalidPhone, err)
	assert.Equal(t, StateEnterDetails, w.State())
}

func TestGatewayCancellationKeepsDraftAndState(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	w := newTestWizard(asyncPayer{}, dispatcher)

	require.NoError(t, w.SelectSlot(tomorrow(), "02:00 PM"))
	require.NoError(t, w.EnterDetails(Details{
		Name: "Test Patient", Email: "test@example.com", Phone: "9876543210",
		Reason: "Kidney stone follow-up",
	}))

	pending, err := w.Pay(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "order_test_9", pending.OrderID)
	assert.True(t, w.Processing())

	before := w.Draft()
	err = w.CancelPayment()
	assert.Equal(t, ErrPaymentCancelled, err)
	assert.Equal(t, StatePay, w.State())
	assert.False(t, w.Processing())
	assert.Nil(t, w.PendingOrder())
	assert.Equal(t, before, w.Draft(), "draft unchanged on cancellation")
	assert.Empty(t, dispatcher.payloads)
}

func TestGatewaySuccessCallbackConfirms(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	w := newTestWizard(asyncPayer{}, dispatcher)

	require.NoError(t, w.SelectSlot(tomorrow(), "02:00 PM"))
	require.NoError(t, w.EnterDetails(Details{
		Name: "Test Patient", Email: "test@example.com", Phone: "9876543210",
	}))
	_, err := w.Pay(context.Background())
	require.NoError(t, err)

	require.NoError(t, w.CompletePayment(context.Background(), "pay_29QQoUBi66xm2f"))
	assert.Equal(t, StateConfirmed, w.State())
	assert.Equal(t, "pay_29QQoUBi66xm2f", w.Draft().PaymentReference)
	require.Len(t, dispatcher.payloads, 1)
	assert.Equal(t, DefaultReason, dispatcher.payloads[0].Reason)
}

func TestPaymentErrorKeepsWizardOnPayStep(t *testing.T) {
	w := newTestWizard(failingPayer{}, &fakeDispatcher{})
	require.NoError(t, w.SelectSlot(tomorrow(), "09:00 AM"))
	require.NoError(t, w.EnterDetails(validDetails()))

	_, err := w.Pay(context.Background())
	assert.Equal(t, ErrBookingFailed, err)
	assert.Equal(t, StatePay, w.State())
	assert.False(t, w.Processing())
}

func TestBackNavigation(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})

	assert.Equal(t, ErrInvalidTransition, w.Back(), "no back from the first step")

	require.NoError(t, w.SelectSlot(tomorrow(), "09:00 AM"))
	require.NoError(t, w.Back())
	assert.Equal(t, StateSelectSlot, w.State())

	require.NoError(t, w.SelectSlot(tomorrow(), "09:00 AM"))
	require.NoError(t, w.EnterDetails(validDetails()))
	require.NoError(t, w.Back())
	assert.Equal(t, StateEnterDetails, w.State())
}

func TestDispatchIsAtMostOncePerDraft(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	w := newTestWizard(asyncPayer{}, dispatcher)

	require.NoError(t, w.SelectSlot(tomorrow(), "09:00 AM"))
	require.NoError(t, w.EnterDetails(validDetails()))
	_, err := w.Pay(context.Background())
	require.NoError(t, err)

	require.NoError(t, w.CompletePayment(context.Background(), "pay_a"))
	// A stray duplicate callback cannot re-send the payload.
	assert.Equal(t, ErrInvalidTransition, w.CompletePayment(context.Background(), "pay_b"))
	assert.Len(t, dispatcher.payloads, 1)
}

func TestOperationsRejectedOutsideTheirState(t *testing.T) {
	w := newTestWizard(payments.NewMock(), &fakeDispatcher{})

	assert.Equal(t, ErrInvalidTransition, w.EnterDetails(validDetails()))
	_, err := w.Pay(context.Background())
	assert.Equal(t, ErrInvalidTransition, err)
	assert.Equal(t, ErrInvalidTransition, w.CancelPayment())
	assert.Equal(t, ErrInvalidTransition, w.CompletePayment(context.Background(), "pay_x"))
}
