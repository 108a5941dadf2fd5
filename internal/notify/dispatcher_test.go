package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPayload() Payload {
	return Payload{
		ID:                "apt_1700000000000",
		PatientName:       "Test Patient",
		PatientEmail:      "test@example.com",
		PatientPhone:      "9876543210",
		AppointmentDate:   "2026-03-03",
		AppointmentTime:   "09:00 AM",
		Reason:            "General Consultation",
		PaymentStatus:     "completed",
		RazorpayPaymentID: "pay_mock_1700000000000",
	}
}

func TestBestEffortSendsExactlyOnce(t *testing.T) {
	var calls atomic.Int32
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, PolicyBestEffort, 3, time.Millisecond, zap.NewNop())
	d.Dispatch(context.Background(), testPayload())

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "apt_1700000000000", got.ID)
	assert.Equal(t, "09:00 AM", got.AppointmentTime)
}

func TestBestEffortSwallowsFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, PolicyBestEffort, 3, time.Millisecond, zap.NewNop())
	d.Dispatch(context.Background(), testPayload()) // must not panic or retry

	assert.Equal(t, int32(1), calls.Load())
}

func TestAtLeastOnceRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, PolicyAtLeastOnce, 5, time.Millisecond, zap.NewNop())
	d.Dispatch(context.Background(), testPayload())

	assert.Equal(t, int32(3), calls.Load())
}

func TestAtLeastOnceGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, PolicyAtLeastOnce, 2, time.Millisecond, zap.NewNop())
	d.Dispatch(context.Background(), testPayload())

	assert.Equal(t, int32(2), calls.Load())
}

func TestUnconfiguredURLIsANoop(t *testing.T) {
	d := NewDispatcher("", PolicyBestEffort, 1, time.Millisecond, zap.NewNop())
	d.Dispatch(context.Background(), testPayload()) // logs and returns
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyAtLeastOnce, ParsePolicy("at_least_once"))
	assert.Equal(t, PolicyBestEffort, ParsePolicy("best_effort"))
	assert.Equal(t, PolicyBestEffort, ParsePolicy(""))
	assert.Equal(t, PolicyBestEffort, ParsePolicy("whatever"))
}
