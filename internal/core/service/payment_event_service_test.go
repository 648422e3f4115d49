package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubDonationRepo struct {
	byTxn     map[string]*domain.Donation
	updateErr error
	updated   []domain.PaymentStatusChange
}

func newStubDonationRepo() *stubDonationRepo {
	return &stubDonationRepo{byTxn: make(map[string]*domain.Donation)}
}

func (r *stubDonationRepo) Create(_ context.Context, d *domain.Donation) (*domain.Donation, error) {
	if _, exists := r.byTxn[d.TransactionID]; exists {
		return nil, domain.ErrDuplicateTransaction
	}
	clone := *d
	r.byTxn[d.TransactionID] = &clone
	return &clone, nil
}

func (r *stubDonationRepo) FindByTransactionID(_ context.Context, transactionID string) (*domain.Donation, error) {
	d, ok := r.byTxn[transactionID]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDonationRepo) ListByDonor(_ context.Context, _ string) ([]*domain.Donation, error) {
	return nil, nil
}

func (r *stubDonationRepo) UpdateStatus(_ context.Context, transactionID string, status domain.PaymentStatus, change domain.PaymentStatusChange) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	d, ok := r.byTxn[transactionID]
	if !ok {
		return domain.ErrDonationNotFound
	}
	d.PaymentStatus = status
	d.StatusHistory = append(d.StatusHistory, change)
	r.updated = append(r.updated, change)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, txn, status string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, txn, status string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, txn+":"+status)
	return nil
}

func pendingDonation(txn string) *domain.Donation {
	return &domain.Donation{
		ID:            "d1",
		DonorID:       "u1",
		Amount:        5000,
		Currency:      "INR",
		TransactionID: txn,
		PaymentStatus: domain.PaymentPending,
	}
}

func event(txn, status string) ports.PaymentEventInput {
	return ports.PaymentEventInput{
		TransactionID: txn,
		Status:        status,
		Timestamp:     time.Now().UTC(),
		Source:        "razorpay",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestPaymentEventService_Process_AppliesTransition(t *testing.T) {
	repo := newStubDonationRepo()
	repo.byTxn["txn_1"] = pendingDonation("txn_1")
	dedup := &stubDedup{}
	svc := NewPaymentEventService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), event("txn_1", "completed")); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	d := repo.byTxn["txn_1"]
	if d.PaymentStatus != domain.PaymentCompleted {
		t.Fatalf("expected completed, got %s", d.PaymentStatus)
	}
	if len(d.StatusHistory) != 1 || d.StatusHistory[0].Source != "razorpay" {
		t.Fatalf("unexpected status history: %+v", d.StatusHistory)
	}
	if len(dedup.marked) != 1 {
		t.Fatalf("expected dedup key marked, got %v", dedup.marked)
	}
}

func TestPaymentEventService_Process_DuplicateSkipped(t *testing.T) {
	repo := newStubDonationRepo()
	repo.byTxn["txn_1"] = pendingDonation("txn_1")
	svc := NewPaymentEventService(repo, &stubDedup{dupResult: true}, zerolog.Nop())

	if err := svc.Process(context.Background(), event("txn_1", "completed")); err != nil {
		t.Fatalf("duplicate should be silently skipped: %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("duplicate must not write: %+v", repo.updated)
	}
}

func TestPaymentEventService_Process_DedupErrorProcessesAnyway(t *testing.T) {
	repo := newStubDonationRepo()
	repo.byTxn["txn_1"] = pendingDonation("txn_1")
	svc := NewPaymentEventService(repo, &stubDedup{dupErr: errors.New("redis down")}, zerolog.Nop())

	if err := svc.Process(context.Background(), event("txn_1", "completed")); err != nil {
		t.Fatalf("dedup outage must not drop events: %v", err)
	}
	if repo.byTxn["txn_1"].PaymentStatus != domain.PaymentCompleted {
		t.Fatalf("event not applied")
	}
}

func TestPaymentEventService_Process_InvalidTransition(t *testing.T) {
	repo := newStubDonationRepo()
	d := pendingDonation("txn_1")
	d.PaymentStatus = domain.PaymentFailed
	repo.byTxn["txn_1"] = d
	svc := NewPaymentEventService(repo, &stubDedup{}, zerolog.Nop())

	err := svc.Process(context.Background(), event("txn_1", "completed"))
	if !errors.Is(err, domain.ErrInvalidPaymentTransition) {
		t.Fatalf("expected ErrInvalidPaymentTransition, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("invalid transition must not write")
	}
}

func TestPaymentEventService_Process_UnknownTransaction(t *testing.T) {
	svc := NewPaymentEventService(newStubDonationRepo(), &stubDedup{}, zerolog.Nop())

	err := svc.Process(context.Background(), event("txn_missing", "completed"))
	if !errors.Is(err, domain.ErrDonationNotFound) {
		t.Fatalf("expected ErrDonationNotFound, got %v", err)
	}
}

func TestPaymentEventService_Process_RefundAfterCompletion(t *testing.T) {
	repo := newStubDonationRepo()
	repo.byTxn["txn_1"] = pendingDonation("txn_1")
	svc := NewPaymentEventService(repo, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), event("txn_1", "completed")); err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if err := svc.Process(context.Background(), event("txn_1", "refunded")); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if repo.byTxn["txn_1"].PaymentStatus != domain.PaymentRefunded {
		t.Fatalf("expected refunded, got %s", repo.byTxn["txn_1"].PaymentStatus)
	}
	if len(repo.byTxn["txn_1"].StatusHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %+v", repo.byTxn["txn_1"].StatusHistory)
	}
}
