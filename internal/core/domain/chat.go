package domain

import (
	"errors"
	"time"
)

var ErrEmptyChatMessage = errors.New("message is required")

// ChatCategory classifies an assistant exchange by topic.
type ChatCategory string

const (
	ChatGeneral     ChatCategory = "general"
	ChatEvents      ChatCategory = "events"
	ChatJobs        ChatCategory = "jobs"
	ChatConnections ChatCategory = "connections"
	ChatDonations   ChatCategory = "donations"
	ChatHelp        ChatCategory = "help"
)

// ChatMessage is one persisted exchange with the rule-based assistant.
type ChatMessage struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Message   string       `json:"message"`
	Response  string       `json:"response"`
	Category  ChatCategory `json:"category"`
	CreatedAt time.Time    `json:"created_at"`
}
