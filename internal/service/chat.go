package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/pageza/nutripal/backend/internal/models"
	"gorm.io/gorm"
)

// CoachContextWindow is how many trailing messages are inspected for context
const CoachContextWindow = 5

// ErrEmptyMessage is returned when a coach question has no text
var ErrEmptyMessage = errors.New("message is required")

// ChatService persists coach conversations
type ChatService struct {
	db  *gorm.DB
	ai  AIServiceInterface
	now func() time.Time
}

var _ IChatService = (*ChatService)(nil)

// NewChatService creates a new ChatService instance
func NewChatService(db *gorm.DB, ai AIServiceInterface) *ChatService {
	return &ChatService{db: db, ai: ai, now: utcNow}
}

// NewChatMessage creates a message with a time-ordered id
func NewChatMessage(role models.ChatRole, content string, at time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID:        ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
}

// AssistantContext returns the assistant turns among the last window messages
func AssistantContext(messages []models.ChatMessage, window int) []string {
	start := len(messages) - window
	if start < 0 {
		start = 0
	}
	var turns []string
	for _, m := range messages[start:] {
		if m.Role == models.RoleAssistant {
			turns = append(turns, m.Content)
		}
	}
	return turns
}

// WithMessages returns a copy of session with msgs appended. The input
// session and its message slice are left untouched.
func WithMessages(session models.ChatSession, at time.Time, msgs ...models.ChatMessage) models.ChatSession {
	next := session
	combined := make([]models.ChatMessage, 0, len(session.Messages)+len(msgs))
	combined = append(combined, session.Messages...)
	combined = append(combined, msgs...)
	next.Messages = combined
	next.UpdatedAt = at
	return next
}

// StartSession opens an empty conversation
func (s *ChatService) StartSession(ctx context.Context, profileID uuid.UUID) (*models.ChatSession, error) {
	now := s.now()
	session := &models.ChatSession{
		ID:        uuid.New(),
		ProfileID: profileID,
		Messages:  []models.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return session, nil
}

// ListSessions returns the profile's sessions, most recently active first
func (s *ChatService) ListSessions(ctx context.Context, profileID uuid.UUID) ([]*models.ChatSession, error) {
	var sessions []*models.ChatSession
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("updated_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return sessions, nil
}

func (s *ChatService) getSession(ctx context.Context, profileID, sessionID uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := s.db.WithContext(ctx).First(&session, "id = ? AND profile_id = ?", sessionID, profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &session, nil
}

// Ask sends text to the coach and stores both turns. The coach always
// answers; on failure the answer is the apology message.
func (s *ChatService) Ask(ctx context.Context, profile *models.UserProfile, sessionID uuid.UUID, text string) (*models.ChatSession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	session, err := s.getSession(ctx, profile.ID, sessionID)
	if err != nil {
		return nil, err
	}

	asked := s.now()
	question := NewChatMessage(models.RoleUser, text, asked)
	reply := s.ai.GetCoachReply(ctx, text, profile, AssistantContext(session.Messages, CoachContextWindow))
	answered := s.now()
	if !answered.After(asked) {
		answered = asked.Add(time.Millisecond)
	}
	answer := NewChatMessage(models.RoleAssistant, reply, answered)

	updated := WithMessages(*session, answered, question, answer)
	if err := s.db.WithContext(ctx).Save(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}
	return &updated, nil
}
