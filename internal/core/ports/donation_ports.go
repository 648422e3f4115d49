package ports

import (
	"context"
	"time"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// DonationRepository defines persistence operations for donations. The store
// enforces transaction-id uniqueness; Create surfaces a violation as
// domain.ErrDuplicateTransaction.
type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) (*domain.Donation, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Donation, error)
	// ListByDonor returns the donor's donations, newest first. An empty
	// donorID lists all donations (admin view).
	ListByDonor(ctx context.Context, donorID string) ([]*domain.Donation, error)
	// UpdateStatus applies a settled payment event to the donation.
	UpdateStatus(ctx context.Context, transactionID string, status domain.PaymentStatus, change domain.PaymentStatusChange) error
}

// CreateDonationInput carries the payload for a new pledge.
type CreateDonationInput struct {
	DonorID       string
	Amount        float64
	Currency      string
	Purpose       string
	Message       string
	PaymentMethod string
	TransactionID string
}

// DonationService defines donation use cases.
type DonationService interface {
	CreateDonation(ctx context.Context, input CreateDonationInput) (*domain.Donation, error)
	MyDonations(ctx context.Context, donorID string) ([]*domain.Donation, error)
	AllDonations(ctx context.Context) ([]*domain.Donation, error)
}

// PaymentEventInput is one gateway status notification for a donation.
type PaymentEventInput struct {
	TransactionID string
	Status        string
	Timestamp     time.Time
	Source        string
}

// PaymentEventService applies gateway events to donations. Events for one
// transaction must be processed in order; the dispatcher guarantees this by
// sharding on the transaction id.
type PaymentEventService interface {
	Process(ctx context.Context, event PaymentEventInput) error
}
