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

const collectionEvents = "events"

type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	EventType   string             `bson:"event_type"`
	Date        time.Time          `bson:"date"`
	EndDate     *time.Time         `bson:"end_date,omitempty"`
	Venue       string             `bson:"venue"`
	IsVirtual   bool               `bson:"is_virtual"`
	MeetingLink string             `bson:"meeting_link,omitempty"`
	OrganizerID string             `bson:"organizer_id"`
	Status      string             `bson:"status"`
	Tags        []string           `bson:"tags,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoEvent(e *domain.Event) *mongoEvent {
	return &mongoEvent{
		Title:       e.Title,
		Description: e.Description,
		EventType:   e.EventType,
		Date:        e.Date,
		EndDate:     e.EndDate,
		Venue:       e.Venue,
		IsVirtual:   e.IsVirtual,
		MeetingLink: e.MeetingLink,
		OrganizerID: e.OrganizerID,
		Status:      string(e.Status),
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		EventType:   m.EventType,
		Date:        m.Date,
		EndDate:     m.EndDate,
		Venue:       m.Venue,
		IsVirtual:   m.IsVirtual,
		MeetingLink: m.MeetingLink,
		OrganizerID: m.OrganizerID,
		Status:      domain.EventStatus(m.Status),
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoEvent(e))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *e
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var m mongoEvent
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return m.toDomain(), nil
}

// List returns events sorted by date ascending, optionally scoped to one
// organizer.
func (r *EventRepository) List(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if organizerID != "" {
		filter["organizer_id"] = organizerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.Event
	for cur.Next(ctx) {
		var m mongoEvent
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, m.toDomain())
	}
	return events, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	doc := toMongoEvent(e)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes for listings.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "organizer_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
