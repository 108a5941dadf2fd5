package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-booking-service/internal/notify"
	"clinic-booking-service/internal/payments"
	"clinic-booking-service/internal/slots"
)

// State of the booking wizard. Strictly linear forward; Back moves to the
// immediately preceding state only.
type State string

const (
	StateSelectSlot   State = "select_slot"
	StateEnterDetails State = "enter_details"
	StatePay          State = "pay"
	StateConfirmed    State = "confirmed"
)

// Dispatcher delivers the finalized booking payload. Implementations never
// block confirmation: delivery is fire-and-forget from the wizard's view.
type Dispatcher interface {
	Dispatch(ctx context.Context, p notify.Payload)
}

// Wizard owns one in-progress booking draft and walks it through the four
// steps, orchestrating the payment and persistence collaborators. One wizard
// per patient session; it is not safe for concurrent use.
type Wizard struct {
	state        State
	draft        Draft
	processing   bool
	pendingOrder *payments.Pending
	dispatched   bool

	clock     func() time.Time
	payer     payments.Collaborator
	dispatch  Dispatcher
	validator *Validator
	logger    *zap.Logger
}

func NewWizard(payer payments.Collaborator, dispatch Dispatcher, logger *zap.Logger) *Wizard {
	return &Wizard{
		state:     StateSelectSlot,
		draft:     Draft{PaymentStatus: PaymentPending},
		clock:     time.Now,
		payer:     payer,
		dispatch:  dispatch,
		validator: NewValidator(),
		logger:    logger,
	}
}

// SetClock overrides the wizard's time source. Nil restores time.Now.
func (w *Wizard) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	w.clock = clock
}

func (w *Wizard) State() State                    { return w.state }
func (w *Wizard) Draft() Draft                    { return w.draft }
func (w *Wizard) Processing() bool                { return w.processing }
func (w *Wizard) PendingOrder() *payments.Pending { return w.pendingOrder }

// SelectSlot records the chosen date and slot and advances to the details
// step. The date eligibility predicate and slot membership are re-checked
// here; UI-side enforcement is not trusted.
func (w *Wizard) SelectSlot(date time.Time, label string) error {
	if w.state != StateSelectSlot {
		return ErrInvalidTransition
	}
	if date.IsZero() || label == "" {
		return ErrSelectDateTime
	}
	now := w.clock()
	if !slots.Selectable(date, now) {
		return ErrSelectDateTime
	}
	available := slots.Available(date, now)
	if len(available) == 0 {
		return ErrNoSlots
	}
	if !contains(available, label) {
		return ErrSelectDateTime
	}

	w.draft.Date = date
	w.draft.TimeSlot = label
	w.state = StateEnterDetails
	return nil
}

// EnterDetails validates and records the patient fields and advances to the
// payment step. On any validation failure the step does not advance.
func (w *Wizard) EnterDetails(d Details) error {
	if w.state != StateEnterDetails {
		return ErrInvalidTransition
	}
	if err := w.validator.Validate(d); err != nil {
		return err
	}

	w.draft.PatientName = d.Name
	w.draft.PatientEmail = d.Email
	w.draft.PatientPhone = d.Phone
	w.draft.Reason = strings.TrimSpace(d.Reason)
	if w.draft.Reason == "" {
		w.draft.Reason = DefaultReason
	}
	w.state = StatePay
	return nil
}

// Pay invokes the payment collaborator. A synchronous (mock) outcome
// finalizes the draft and confirms immediately. An asynchronous strategy
// returns the pending order for the external widget; the wizard stays in
// the payment state with the processing flag set until CompletePayment or
// CancelPayment is called.
func (w *Wizard) Pay(ctx context.Context) (*payments.Pending, error) {
	if w.state != StatePay || w.processing {
		return nil, ErrInvalidTransition
	}
	w.processing = true

	// id assigned at payment time, as in the original flow
	if w.draft.ID == "" {
		w.draft.ID = NewID(w.clock())
	}

	res, err := w.payer.Collect(ctx, payments.Request{
		Amount:   payments.FeePaise,
		Currency: payments.Currency,
		Receipt:  w.draft.ID,
		Name:     w.draft.PatientName,
		Email:    w.draft.PatientEmail,
		Contact:  w.draft.PatientPhone,
	})
	if err != nil {
		w.processing = false
		w.logger.Error("payment collection failed",
			zap.String("appointment_id", w.draft.ID), zap.Error(err))
		return nil, ErrBookingFailed
	}

	switch {
	case res.Outcome != nil:
		w.complete(ctx, res.Outcome.Reference)
		return nil, nil
	case res.Pending != nil:
		w.pendingOrder = res.Pending
		return res.Pending, nil
	default:
		w.processing = false
		return nil, ErrBookingFailed
	}
}

// CompletePayment finalizes the draft with a verified payment reference and
// confirms the booking. Used by the gateway success callback; signature
// verification happens before this is called.
func (w *Wizard) CompletePayment(ctx context.Context, reference string) error {
	if w.state != StatePay {
		return ErrInvalidTransition
	}
	w.complete(ctx, reference)
	return nil
}

// CancelPayment handles widget dismissal: the wizard stays in the payment
// step, the processing flag clears, and no draft fields change.
func (w *Wizard) CancelPayment() error {
	if w.state != StatePay {
		return ErrInvalidTransition
	}
	w.processing = false
	w.pendingOrder = nil
	return ErrPaymentCancelled
}

// Back moves to the immediately preceding step. It never skips states and
// is not available from the first or final step (leaving from the first
// step is an external exit).
func (w *Wizard) Back() error {
	switch w.state {
	case StateEnterDetails:
		w.state = StateSelectSlot
	case StatePay:
		if w.processing {
			return ErrInvalidTransition
		}
		w.state = StateEnterDetails
	default:
		return ErrInvalidTransition
	}
	return nil
}

// complete marks the payment done and dispatches the booking payload.
// Dispatch is at most once per draft and never blocks the confirmation:
// delivery failures stay on the side channel.
func (w *Wizard) complete(ctx context.Context, reference string) {
	w.draft.PaymentStatus = PaymentCompleted
	w.draft.PaymentReference = reference
	w.processing = false
	w.pendingOrder = nil

	if !w.dispatched {
		w.dispatched = true
		w.dispatch.Dispatch(ctx, w.draft.Payload())
	}

	w.state = StateConfirmed
	w.logger.Info("booking confirmed",
		zap.String("appointment_id", w.draft.ID),
		zap.String("date", w.draft.Date.Format(slots.DateLayout)),
		zap.String("slot", w.draft.TimeSlot))
}

func contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
