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

const collectionConnections = "connections"

type ConnectionRepository struct {
	col *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{col: db.Collection(collectionConnections)}
}

type mongoConnection struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"student_id"`
	AlumniID  string             `bson:"alumni_id"`
	Status    string             `bson:"status"`
	Message   string             `bson:"message,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoConnection) toDomain() *domain.Connection {
	return &domain.Connection{
		ID:        m.ID.Hex(),
		StudentID: m.StudentID,
		AlumniID:  m.AlumniID,
		Status:    domain.ConnectionStatus(m.Status),
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ConnectionRepository) Create(ctx context.Context, c *domain.Connection) (*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := &mongoConnection{
		StudentID: c.StudentID,
		AlumniID:  c.AlumniID,
		Status:    string(c.Status),
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConnectionExists
		}
		return nil, fmt.Errorf("insert connection: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrConnectionNotFound
	}

	var m mongoConnection
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("find connection: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ConnectionRepository) FindByPair(ctx context.Context, studentID, alumniID string) (*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoConnection
	err := r.col.FindOne(ctx, bson.M{"student_id": studentID, "alumni_id": alumniID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("find connection by pair: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ConnectionRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"student_id": userID},
		{"alumni_id": userID},
	}}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer cur.Close(ctx)

	var conns []*domain.Connection
	for cur.Next(ctx) {
		var m mongoConnection
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode connection: %w", err)
		}
		conns = append(conns, m.toDomain())
	}
	return conns, cur.Err()
}

func (r *ConnectionRepository) Update(ctx context.Context, c *domain.Connection) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrConnectionNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(c.Status),
		"updated_at": c.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

// Stats aggregates request counts by status for the admin dashboard.
func (r *ConnectionRepository) Stats(ctx context.Context) (*domain.ConnectionStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("connection stats: %w", err)
	}
	defer cur.Close(ctx)

	stats := &domain.ConnectionStats{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode stats row: %w", err)
		}
		stats.Total += row.Count
		switch domain.ConnectionStatus(row.ID) {
		case domain.ConnectionPending:
			stats.Pending = row.Count
		case domain.ConnectionAccepted:
			stats.Accepted = row.Count
		case domain.ConnectionRejected:
			stats.Rejected = row.Count
		}
	}
	return stats, cur.Err()
}

// EnsureIndexes creates the one-request-per-pair constraint.
func (r *ConnectionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "alumni_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
