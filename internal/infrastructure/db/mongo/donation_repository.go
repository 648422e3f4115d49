package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

const collectionDonations = "donations"

type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{col: db.Collection(collectionDonations)}
}

type mongoStatusChange struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Source    string    `bson:"source"`
}

type mongoDonation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	DonorID       string              `bson:"donor_id"`
	Amount        float64             `bson:"amount"`
	Currency      string              `bson:"currency"`
	Purpose       string              `bson:"purpose"`
	Message       string              `bson:"message,omitempty"`
	PaymentMethod string              `bson:"payment_method"`
	TransactionID string              `bson:"transaction_id"`
	PaymentStatus string              `bson:"payment_status"`
	StatusHistory []mongoStatusChange `bson:"status_history,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func (m *mongoDonation) toDomain() *domain.Donation {
	d := &domain.Donation{
		ID:            m.ID.Hex(),
		DonorID:       m.DonorID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Purpose:       m.Purpose,
		Message:       m.Message,
		PaymentMethod: m.PaymentMethod,
		TransactionID: m.TransactionID,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, c := range m.StatusHistory {
		d.StatusHistory = append(d.StatusHistory, domain.PaymentStatusChange{
			Status:    domain.PaymentStatus(c.Status),
			Timestamp: c.Timestamp,
			Source:    c.Source,
		})
	}
	return d
}

// Create inserts a new donation. The unique index on transaction_id surfaces
// a duplicate as domain.ErrDuplicateTransaction.
func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := &mongoDonation{
		DonorID:       d.DonorID,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Purpose:       d.Purpose,
		Message:       d.Message,
		PaymentMethod: d.PaymentMethod,
		TransactionID: d.TransactionID,
		PaymentStatus: string(d.PaymentStatus),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	created := *d
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *DonationRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoDonation
	err := r.col.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}
	return m.toDomain(), nil
}

// ListByDonor returns donations newest first; an empty donorID lists all.
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID string) ([]*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if donorID != "" {
		filter["donor_id"] = donorID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer cur.Close(ctx)

	var donations []*domain.Donation
	for cur.Next(ctx) {
		var m mongoDonation
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode donation: %w", err)
		}
		donations = append(donations, m.toDomain())
	}
	return donations, cur.Err()
}

// UpdateStatus atomically applies a settled payment event: status plus an
// audit entry in one write.
func (r *DonationRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.PaymentStatus, change domain.PaymentStatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"payment_status": string(status),
			"updated_at":     time.Now().UTC(),
		},
		"$push": bson.M{
			"status_history": mongoStatusChange{
				Status:    string(change.Status),
				Timestamp: change.Timestamp,
				Source:    change.Source,
			},
		},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"transaction_id": transactionID}, update)
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDonationNotFound
	}
	return nil
}

// EnsureIndexes creates the transaction-id uniqueness constraint.
func (r *DonationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transaction_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "donor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
