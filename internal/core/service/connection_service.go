package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

type connectionService struct {
	repo  ports.ConnectionRepository
	users ports.UserRepository
	log   zerolog.Logger
}

// NewConnectionService returns a ConnectionService implementation.
func NewConnectionService(repo ports.ConnectionRepository, users ports.UserRepository, log zerolog.Logger) ports.ConnectionService {
	return &connectionService{repo: repo, users: users, log: log}
}

// RequestConnection creates a pending mentorship request. One request per
// student/alumnus pair, regardless of its current status.
func (s *connectionService) RequestConnection(ctx context.Context, studentID, alumniID, message string) (*domain.Connection, error) {
	if _, err := s.repo.FindByPair(ctx, studentID, alumniID); err == nil {
		return nil, domain.ErrConnectionExists
	} else if !errors.Is(err, domain.ErrConnectionNotFound) {
		return nil, err
	}

	alumni, err := s.users.FindByID(ctx, alumniID)
	if err != nil {
		return nil, err
	}
	if alumni.Role != domain.RoleAlumni {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now().UTC()
	conn := &domain.Connection{
		StudentID: studentID,
		AlumniID:  alumniID,
		Status:    domain.ConnectionPending,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, conn)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("student_id", studentID).Str("alumni_id", alumniID).Msg("mentorship request created")
	return created, nil
}

func (s *connectionService) MyConnections(ctx context.Context, userID string) ([]*domain.Connection, error) {
	return s.repo.ListForUser(ctx, userID)
}

// RespondToConnection lets the targeted alumnus accept or reject a pending
// request.
func (s *connectionService) RespondToConnection(ctx context.Context, id, alumniID string, status domain.ConnectionStatus) (*domain.Connection, error) {
	if !domain.ValidConnectionStatus(status) {
		return nil, domain.ErrInvalidConnectionStatus
	}

	conn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conn.AlumniID != alumniID {
		return nil, domain.ErrForbidden
	}

	conn.Status = status
	conn.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *connectionService) ConnectionStats(ctx context.Context) (*domain.ConnectionStats, error) {
	return s.repo.Stats(ctx)
}
