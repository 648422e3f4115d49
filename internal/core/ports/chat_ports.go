package ports

import (
	"context"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// ChatRepository defines persistence operations for assistant exchanges.
type ChatRepository interface {
	Create(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	// History returns up to limit exchanges for the user, oldest first.
	History(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error)
	Clear(ctx context.Context, userID string) error
}

// ChatService is the rule-based portal assistant.
type ChatService interface {
	SendMessage(ctx context.Context, userID, message string) (*domain.ChatMessage, error)
	History(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error)
	ClearHistory(ctx context.Context, userID string) error
}
