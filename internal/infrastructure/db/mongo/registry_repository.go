package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

const collectionPreVerified = "pre_verified_students"

// RegistryRepository persists the pre-verified student index.
type RegistryRepository struct {
	col *mongo.Collection
}

func NewRegistryRepository(db *mongo.Database) *RegistryRepository {
	return &RegistryRepository{col: db.Collection(collectionPreVerified)}
}

type mongoPreVerified struct {
	CollegeEmail string    `bson:"college_email"`
	RollNumber   string    `bson:"roll_number"`
	Name         string    `bson:"name"`
	Department   string    `bson:"department,omitempty"`
	Batch        string    `bson:"batch,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// Upsert creates or refreshes the entry keyed by college email.
func (r *RegistryRepository) Upsert(ctx context.Context, entry *domain.PreVerifiedStudent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":        entry.Name,
			"roll_number": entry.RollNumber,
			"department":  entry.Department,
			"batch":       entry.Batch,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"college_email": entry.CollegeEmail,
			"created_at":    now,
		},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"college_email": entry.CollegeEmail}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert pre-verified entry: %w", err)
	}
	return nil
}

// FindByEmail retrieves the entry for a normalized email.
func (r *RegistryRepository) FindByEmail(ctx context.Context, email string) (*domain.PreVerifiedStudent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoPreVerified
	err := r.col.FindOne(ctx, bson.M{"college_email": email}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find pre-verified entry: %w", err)
	}

	return &domain.PreVerifiedStudent{
		CollegeEmail: m.CollegeEmail,
		RollNumber:   m.RollNumber,
		Name:         m.Name,
		Department:   m.Department,
		Batch:        m.Batch,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// EnsureIndexes creates the registry's uniqueness constraints: one entry per
// email, one roll number across the whole index.
func (r *RegistryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "college_email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "roll_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
