package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

const collectionChatMessages = "chat_messages"

type ChatRepository struct {
	col *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection(collectionChatMessages)}
}

type mongoChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Message   string             `bson:"message"`
	Response  string             `bson:"response"`
	Category  string             `bson:"category"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m *mongoChatMessage) toDomain() *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		Message:   m.Message,
		Response:  m.Response,
		Category:  domain.ChatCategory(m.Category),
		CreatedAt: m.CreatedAt,
	}
}

func (r *ChatRepository) Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := &mongoChatMessage{
		UserID:    msg.UserID,
		Message:   msg.Message,
		Response:  msg.Response,
		Category:  string(msg.Category),
		CreatedAt: msg.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}

	created := *msg
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// History returns up to limit exchanges for the user, oldest first. The query
// walks newest-first over the index and the result is reversed in memory.
func (r *ChatRepository) History(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	defer cur.Close(ctx)

	var messages []*domain.ChatMessage
	for cur.Next(ctx) {
		var m mongoChatMessage
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}
		messages = append(messages, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ChatRepository) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-user history index.
func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
