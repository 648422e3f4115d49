package service

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// chatRule maps a keyword pattern to a response category. Rules are checked
// in order; the first match wins.
type chatRule struct {
	pattern  *regexp.Regexp
	category domain.ChatCategory
}

var chatRules = []chatRule{
	{regexp.MustCompile(`\b(hi|hello|hey|greetings)\b`), domain.ChatGeneral},
	{regexp.MustCompile(`\b(event|workshop|reunion|seminar|conference)\b`), domain.ChatEvents},
	{regexp.MustCompile(`\b(job|career|opportunity|hiring|position|work)\b`), domain.ChatJobs},
	{regexp.MustCompile(`\b(connect|mentor|alumni|network|match|guidance)\b`), domain.ChatConnections},
	{regexp.MustCompile(`\b(donate|donation|contribute|fund|support|scholarship)\b`), domain.ChatDonations},
	{regexp.MustCompile(`\b(help|assist|guide|how|what)\b`), domain.ChatHelp},
}

var chatResponses = map[domain.ChatCategory][]string{
	domain.ChatGeneral: {
		"Hello! I'm the portal assistant. How can I help you today?",
		"Hi there! Need help navigating the platform?",
		"Welcome! I can help with events, jobs, connections, and more.",
	},
	domain.ChatEvents: {
		"You can find upcoming alumni events on the Events page.",
		"We host networking events, workshops, and reunions. Check the Events section for details.",
		"Alumni events are a great way to connect. Visit the Events page to see what is coming up.",
	},
	domain.ChatJobs: {
		"Looking for opportunities? Check the Jobs section where alumni post openings.",
		"Alumni frequently share job opportunities. Head to the Jobs page to see current listings.",
		"Career opportunities from the alumni network are listed on the Jobs page.",
	},
	domain.ChatConnections: {
		"You can connect with alumni based on your interests from the Connections page.",
		"Our matching system pairs students with alumni who share interests and work in relevant domains.",
		"To find a mentor, visit the Connections page and search alumni in your area of interest.",
	},
	domain.ChatDonations: {
		"You can support scholarships and infrastructure through the Donations page.",
		"Alumni can contribute to student scholarships and other initiatives via the Donations section.",
		"Thank you for considering a donation! Visit the Donations page to see current campaigns.",
	},
	domain.ChatHelp: {
		"I can help with events, jobs, alumni connections, donations, and general navigation. What would you like to know?",
		"Ask me about finding events, job opportunities, connecting with alumni, or making donations.",
	},
}

var chatFallbacks = []string{
	"I'm not sure I understand that. Could you try rephrasing it?",
	"I can help with events, jobs, connections, and donations. What would you like to know?",
	"I didn't quite get that. Try asking about events, jobs, or alumni connections.",
}

type chatService struct {
	repo ports.ChatRepository
	log  zerolog.Logger
}

// NewChatService returns the rule-based portal assistant.
func NewChatService(repo ports.ChatRepository, log zerolog.Logger) ports.ChatService {
	return &chatService{repo: repo, log: log}
}

func (s *chatService) SendMessage(ctx context.Context, userID, message string) (*domain.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyChatMessage
	}

	category, response := classify(message)

	stored, err := s.repo.Create(ctx, &domain.ChatMessage{
		UserID:    userID,
		Message:   message,
		Response:  response,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to store chat message")
		return nil, err
	}
	return stored, nil
}

func (s *chatService) History(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.History(ctx, userID, limit)
}

func (s *chatService) ClearHistory(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

// classify picks the first matching rule and a canned response for it.
func classify(message string) (domain.ChatCategory, string) {
	lower := strings.ToLower(message)
	for _, rule := range chatRules {
		if rule.pattern.MatchString(lower) {
			pool := chatResponses[rule.category]
			return rule.category, pool[rand.Intn(len(pool))]
		}
	}
	return domain.ChatGeneral, chatFallbacks[rand.Intn(len(chatFallbacks))]
}
