package ports

import (
	"context"
	"time"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// EventRepository defines persistence operations for campus events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns all events sorted by date ascending. When organizerID is
	// non-empty the result is scoped to that organizer.
	List(ctx context.Context, organizerID string) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// CreateEventInput carries the payload for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	EventType   string
	Date        time.Time
	EndDate     *time.Time
	Venue       string
	IsVirtual   bool
	MeetingLink string
	Tags        []string
	OrganizerID string
}

// UpdateEventInput patches an existing event; nil/empty fields are left
// untouched.
type UpdateEventInput struct {
	Title       string
	Description string
	EventType   string
	Date        *time.Time
	Venue       string
	MeetingLink string
	Tags        []string
}

// EventService defines use-case operations for events. Mutations are
// restricted to the organizer or an admin.
type EventService interface {
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	MyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error)
	CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, id, actorID, actorRole string, input UpdateEventInput) (*domain.Event, error)
	UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id, actorID, actorRole string) error
}
