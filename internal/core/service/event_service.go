package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

type eventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, log: log}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.List(ctx, "")
}

func (s *eventService) MyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return s.repo.List(ctx, organizerID)
}

func (s *eventService) CreateEvent(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error) {
	now := time.Now().UTC()
	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		EventType:   input.EventType,
		Date:        input.Date,
		EndDate:     input.EndDate,
		Venue:       input.Venue,
		IsVirtual:   input.IsVirtual,
		MeetingLink: input.MeetingLink,
		OrganizerID: input.OrganizerID,
		Status:      domain.EventPending,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if event.EventType == "" {
		event.EventType = "networking"
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Str("organizer_id", input.OrganizerID).Msg("event created")
	return created, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id, actorID, actorRole string, input ports.UpdateEventInput) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if input.Title != "" {
		event.Title = input.Title
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.EventType != "" {
		event.EventType = input.EventType
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Venue != "" {
		event.Venue = input.Venue
	}
	if input.MeetingLink != "" {
		event.MeetingLink = input.MeetingLink
	}
	if input.Tags != nil {
		event.Tags = input.Tags
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if !domain.ValidEventStatus(status) {
		return nil, domain.ErrInvalidEventStatus
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Status = status
	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id, actorID, actorRole string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
