package domain

import (
	"errors"
	"time"
)

// EventStatus represents the lifecycle state of a campus event.
type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

var ErrEventNotFound = errors.New("event not found")
var ErrInvalidEventStatus = errors.New("invalid event status")

// ValidEventStatus reports whether s is one of the known lifecycle states.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventPending, EventUpcoming, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Event is a campus event organised by an alumnus or administrator.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	EventType   string      `json:"event_type"`
	Date        time.Time   `json:"date"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Venue       string      `json:"venue"`
	IsVirtual   bool        `json:"is_virtual"`
	MeetingLink string      `json:"meeting_link,omitempty"`
	OrganizerID string      `json:"organizer_id"`
	Status      EventStatus `json:"status"`
	Tags        []string    `json:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
