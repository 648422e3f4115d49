package ports

import (
	"context"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// ConnectionRepository defines persistence operations for mentorship
// connections.
type ConnectionRepository interface {
	Create(ctx context.Context, c *domain.Connection) (*domain.Connection, error)
	FindByID(ctx context.Context, id string) (*domain.Connection, error)
	// FindByPair returns the existing request between a student and an
	// alumnus regardless of status, or domain.ErrConnectionNotFound.
	FindByPair(ctx context.Context, studentID, alumniID string) (*domain.Connection, error)
	// ListForUser returns connections where the user is either side.
	ListForUser(ctx context.Context, userID string) ([]*domain.Connection, error)
	Update(ctx context.Context, c *domain.Connection) error
	Stats(ctx context.Context) (*domain.ConnectionStats, error)
}

// ConnectionService defines mentorship request use cases.
type ConnectionService interface {
	// RequestConnection creates a pending request from a student to an
	// alumnus; a second request for the same pair is a conflict.
	RequestConnection(ctx context.Context, studentID, alumniID, message string) (*domain.Connection, error)
	MyConnections(ctx context.Context, userID string) ([]*domain.Connection, error)
	// RespondToConnection lets the targeted alumnus accept or reject.
	RespondToConnection(ctx context.Context, id, alumniID string, status domain.ConnectionStatus) (*domain.Connection, error)
	ConnectionStats(ctx context.Context) (*domain.ConnectionStats, error)
}
