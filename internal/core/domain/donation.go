package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the lifecycle state of a donation payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// validPaymentTransitions defines the allowed state machine transitions for a
// donation as gateway events arrive.
var validPaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {PaymentRefunded},
}

var ErrDonationNotFound = errors.New("donation not found")
var ErrDuplicateTransaction = errors.New("transaction id already exists")
var ErrInvalidPaymentTransition = errors.New("invalid payment status transition")

// CanTransitionTo reports whether a transition from the current payment
// status to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range validPaymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Donation is a contribution pledged by an alumnus. It starts pending and is
// settled asynchronously by payment gateway events.
type Donation struct {
	ID            string        `json:"id"`
	DonorID       string        `json:"donor_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Purpose       string        `json:"purpose"`
	Message       string        `json:"message,omitempty"`
	PaymentMethod string        `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	StatusHistory []PaymentStatusChange `json:"status_history,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PaymentStatusChange records a single settled gateway event on a donation.
type PaymentStatusChange struct {
	Status    PaymentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
}
