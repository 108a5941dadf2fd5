package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an appointment id has no record.
var ErrNotFound = errors.New("appointment not found")

// Store is the appointment repository. The booking flow only ever moves
// payment_status forward (pending -> completed, or pending -> failed on a
// rejected verification); confirmed records are immutable history.
type Store interface {
	Insert(ctx context.Context, appt *Appointment) error
	Get(ctx context.Context, id string) (*Appointment, error)
	SetOrderID(ctx context.Context, id, orderID string) error
	SetPaymentStatus(ctx context.Context, id, status, paymentID string) error
	BookedTimes(ctx context.Context, date string) ([]string, error)
	List(ctx context.Context) ([]Appointment, error)
}

// PGStore implements Store over Postgres.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{DB: pool}
}

func (s *PGStore) Insert(ctx context.Context, appt *Appointment) error {
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now().UTC()
	}
	q := `INSERT INTO appointments
	      (id, patient_name, patient_email, patient_phone, appointment_date,
	       appointment_time, reason, payment_status, razorpay_order_id,
	       razorpay_payment_id, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := s.DB.Exec(ctx, q,
		appt.ID, appt.PatientName, appt.PatientEmail, appt.PatientPhone,
		appt.AppointmentDate, appt.AppointmentTime, appt.Reason,
		appt.PaymentStatus, appt.RazorpayOrderID, appt.RazorpayPaymentID,
		appt.CreatedAt)
	return err
}

func (s *PGStore) Get(ctx context.Context, id string) (*Appointment, error) {
	q := `SELECT id, patient_name, patient_email, patient_phone, appointment_date,
	             appointment_time, reason, payment_status, razorpay_order_id,
	             razorpay_payment_id, created_at
	      FROM appointments WHERE id=$1`
	var a Appointment
	err := s.DB.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.PatientName, &a.PatientEmail, &a.PatientPhone,
		&a.AppointmentDate, &a.AppointmentTime, &a.Reason,
		&a.PaymentStatus, &a.RazorpayOrderID, &a.RazorpayPaymentID,
		&a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PGStore) SetOrderID(ctx context.Context, id, orderID string) error {
	res, err := s.DB.Exec(ctx,
		`UPDATE appointments SET razorpay_order_id=$1 WHERE id=$2`, orderID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) SetPaymentStatus(ctx context.Context, id, status, paymentID string) error {
	res, err := s.DB.Exec(ctx,
		`UPDATE appointments SET payment_status=$1, razorpay_payment_id=$2 WHERE id=$3`,
		status, paymentID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BookedTimes lists slot labels already taken by completed bookings on a
// date. There is no reservation step: two in-flight sessions can still pick
// the same slot, this only hides slots whose payment already went through.
func (s *PGStore) BookedTimes(ctx context.Context, date string) ([]string, error) {
	q := `SELECT appointment_time FROM appointments
	      WHERE appointment_date=$1 AND payment_status='completed'`
	rows, err := s.DB.Query(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PGStore) List(ctx context.Context) ([]Appointment, error) {
	q := `SELECT id, patient_name, patient_email, patient_phone, appointment_date,
	             appointment_time, reason, payment_status, razorpay_order_id,
	             razorpay_payment_id, created_at
	      FROM appointments ORDER BY created_at DESC`
	rows, err := s.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.PatientName, &a.PatientEmail, &a.PatientPhone,
			&a.AppointmentDate, &a.AppointmentTime, &a.Reason,
			&a.PaymentStatus, &a.RazorpayOrderID, &a.RazorpayPaymentID,
			&a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
