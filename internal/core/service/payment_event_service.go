package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for gateway events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, transactionID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, transactionID, status string, ts time.Time) error
}

type paymentEventService struct {
	donations ports.DonationRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewPaymentEventService returns a PaymentEventService implementation.
func NewPaymentEventService(donations ports.DonationRepository, dedup DedupChecker, log zerolog.Logger) ports.PaymentEventService {
	return &paymentEventService{donations: donations, dedup: dedup, log: log}
}

// Process validates, deduplicates and applies a single gateway event.
func (s *paymentEventService) Process(ctx context.Context, in ports.PaymentEventInput) error {
	newStatus := domain.PaymentStatus(in.Status)

	// Idempotency check — gateways redeliver; silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.TransactionID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("transaction_id", in.TransactionID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("transaction_id", in.TransactionID).Str("status", in.Status).Msg("duplicate payment event skipped")
		return nil
	}

	donation, err := s.donations.FindByTransactionID(ctx, in.TransactionID)
	if err != nil {
		return fmt.Errorf("process payment event: %w", err)
	}

	if !donation.PaymentStatus.CanTransitionTo(newStatus) {
		return fmt.Errorf("process payment event: %w (from %s to %s)", domain.ErrInvalidPaymentTransition, donation.PaymentStatus, newStatus)
	}

	// Mark before writing so a crashed retry does not double-apply.
	if markErr := s.dedup.Mark(ctx, in.TransactionID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("transaction_id", in.TransactionID).Msg("failed to set dedup key")
	}

	change := domain.PaymentStatusChange{
		Status:    newStatus,
		Timestamp: in.Timestamp,
		Source:    in.Source,
	}
	if err := s.donations.UpdateStatus(ctx, in.TransactionID, newStatus, change); err != nil {
		return fmt.Errorf("process payment event: update status: %w", err)
	}

	s.log.Info().
		Str("transaction_id", in.TransactionID).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("payment event processed")

	return nil
}
