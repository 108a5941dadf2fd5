package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-booking-service/internal/booking"
	"clinic-booking-service/internal/i18n"
	"clinic-booking-service/internal/slots"
)

// Session is one patient's walk through the booking wizard. The draft lives
// only here until it is confirmed and dispatched; nothing is shared between
// sessions, so two sessions can still pick the same slot.
type Session struct {
	ID        string
	Wizard    *booking.Wizard
	Locale    *i18n.Locale
	CreatedAt time.Time

	mu sync.Mutex
}

// sessionTTL bounds how long an abandoned wizard lingers in memory. The
// whole flow takes minutes; an hour is generous.
const sessionTTL = time.Hour

// SessionStore keeps in-flight wizard sessions in memory. Expired sessions
// are evicted lazily on store access.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, old := range s.sessions {
		if time.Since(old.CreatedAt) > sessionTTL {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = sess
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok && time.Since(sess.CreatedAt) > sessionTTL {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, ok
}

// POST /api/booking-sessions?lang=xx
func (a *App) StartSessionHandler(c *gin.Context) {
	wiz := booking.NewWizard(a.Payer, a.Dispatcher, a.Logger)
	wiz.SetClock(a.now)
	sess := &Session{
		ID:        uuid.NewString(),
		Wizard:    wiz,
		Locale:    a.locale(c.Query("lang")),
		CreatedAt: time.Now(),
	}
	a.Sessions.Put(sess)
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"state":      sess.Wizard.State(),
	})
}

// GET /api/booking-sessions/:id
func (a *App) GetSessionHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.JSON(http.StatusOK, sessionView(sess))
}

type selectSlotReq struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// POST /api/booking-sessions/:id/slot
func (a *App) SessionSlotHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var req selectSlotReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.ParseInLocation(slots.DateLayout, req.Date, a.now().Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.Wizard.SelectSlot(date, req.Time); err != nil {
		a.renderBookingError(c, sess.Locale, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// POST /api/booking-sessions/:id/details
func (a *App) SessionDetailsHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var details booking.Details
	if err := c.BindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.Wizard.EnterDetails(details); err != nil {
		a.renderBookingError(c, sess.Locale, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// POST /api/booking-sessions/:id/pay
// The mock strategy confirms synchronously. The gateway strategy answers
// with the order for the hosted widget; the session stays on the payment
// step until the verify or cancel callback arrives.
func (a *App) SessionPayHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	pending, err := sess.Wizard.Pay(c.Request.Context())
	if err != nil {
		a.renderBookingError(c, sess.Locale, err)
		return
	}
	if pending != nil {
		c.JSON(http.StatusOK, gin.H{
			"state": sess.Wizard.State(),
			"order": gin.H{
				"id":       pending.OrderID,
				"amount":   pending.Amount,
				"currency": pending.Currency,
				"key_id":   pending.KeyID,
			},
			"processing": true,
		})
		return
	}

	view := sessionView(sess)
	if a.MockPayments {
		view["notice"] = sess.Locale.T("booking.mockPayment")
	}
	view["message"] = sess.Locale.T("booking.success.title")
	c.JSON(http.StatusOK, view)
}

type sessionVerifyReq struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// POST /api/booking-sessions/:id/verify
func (a *App) SessionVerifyHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var req sessionVerifyReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	pending := sess.Wizard.PendingOrder()
	if pending == nil || pending.OrderID != req.RazorpayOrderID ||
		!a.Orders.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		c.JSON(http.StatusBadRequest, gin.H{"error": sess.Locale.T("booking.errors.paymentFailed")})
		return
	}
	if err := sess.Wizard.CompletePayment(c.Request.Context(), req.RazorpayPaymentID); err != nil {
		a.renderBookingError(c, sess.Locale, err)
		return
	}

	view := sessionView(sess)
	view["message"] = sess.Locale.T("booking.success.title")
	c.JSON(http.StatusOK, view)
}

// POST /api/booking-sessions/:id/cancel
// Widget dismissal: not an HTTP failure, the session simply stays on the
// payment step with the processing flag cleared.
func (a *App) SessionCancelHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.Wizard.CancelPayment()
	if err == booking.ErrPaymentCancelled {
		view := sessionView(sess)
		view["status"] = "cancelled"
		view["message"] = sess.Locale.T("booking.errors.paymentCancelled")
		c.JSON(http.StatusOK, view)
		return
	}
	a.renderBookingError(c, sess.Locale, err)
}

// POST /api/booking-sessions/:id/back
func (a *App) SessionBackHandler(c *gin.Context) {
	sess, ok := a.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.Wizard.Back(); err != nil {
		a.renderBookingError(c, sess.Locale, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func sessionView(sess *Session) gin.H {
	draft := sess.Wizard.Draft()
	view := gin.H{
		"session_id": sess.ID,
		"state":      sess.Wizard.State(),
		"processing": sess.Wizard.Processing(),
	}
	if !draft.Date.IsZero() {
		view["appointment_date"] = draft.Date.Format(slots.DateLayout)
		view["appointment_time"] = draft.TimeSlot
	}
	if draft.PatientName != "" {
		view["patient_name"] = draft.PatientName
	}
	if draft.ID != "" {
		view["appointment_id"] = draft.ID
	}
	view["payment_status"] = string(draft.PaymentStatus)
	if draft.PaymentReference != "" {
		view["razorpay_payment_id"] = draft.PaymentReference
	}
	return view
}
