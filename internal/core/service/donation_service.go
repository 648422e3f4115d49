package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

type donationService struct {
	repo ports.DonationRepository
	log  zerolog.Logger
}

// NewDonationService returns a DonationService implementation.
func NewDonationService(repo ports.DonationRepository, log zerolog.Logger) ports.DonationService {
	return &donationService{repo: repo, log: log}
}

// CreateDonation records a pledge in pending state. Settlement arrives later
// as gateway events on the payment webhook.
func (s *donationService) CreateDonation(ctx context.Context, input ports.CreateDonationInput) (*domain.Donation, error) {
	now := time.Now().UTC()
	donation := &domain.Donation{
		DonorID:       input.DonorID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Purpose:       input.Purpose,
		Message:       input.Message,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if donation.Currency == "" {
		donation.Currency = "INR"
	}
	if donation.Purpose == "" {
		donation.Purpose = "general"
	}
	if donation.PaymentMethod == "" {
		donation.PaymentMethod = "upi"
	}

	created, err := s.repo.Create(ctx, donation)
	if err != nil {
		s.log.Error().Err(err).Str("transaction_id", input.TransactionID).Msg("failed to create donation")
		return nil, err
	}

	s.log.Info().Str("transaction_id", created.TransactionID).Float64("amount", created.Amount).Msg("donation pledged")
	return created, nil
}

func (s *donationService) MyDonations(ctx context.Context, donorID string) ([]*domain.Donation, error) {
	return s.repo.ListByDonor(ctx, donorID)
}

func (s *donationService) AllDonations(ctx context.Context) ([]*domain.Donation, error) {
	return s.repo.ListByDonor(ctx, "")
}
