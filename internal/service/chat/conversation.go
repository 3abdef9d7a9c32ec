package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
)

var ErrInvalidInput = errors.New("message text must not be empty")

// Conversation owns the append-only transcript of one session.
// Messages are never edited, deleted or reordered.
type Conversation struct {
	mu       sync.RWMutex
	messages []chat.Message
	now      func() time.Time
	newID    func() string

	// inflight admits one advice exchange at a time.
	inflight *semaphore.Weighted
}

// ConversationOption customises a Conversation.
type ConversationOption func(*Conversation)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ConversationOption {
	return func(c *Conversation) { c.now = now }
}

// WithIDGenerator overrides message id generation.
func WithIDGenerator(newID func() string) ConversationOption {
	return func(c *Conversation) { c.newID = newID }
}

// NewConversation starts a transcript seeded with the advisor greeting.
func NewConversation(greeting string, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		messages: make([]chat.Message, 0, 16),
		now:      time.Now,
		newID:    uuid.NewString,
		inflight: semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.messages = append(c.messages, c.newMessage(chat.SpeakerAdvisor, greeting))
	return c
}

// AppendUserMessage records a learner turn. Blank text is rejected and leaves the transcript unchanged.
func (c *Conversation) AppendUserMessage(text string) ([]chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, c.newMessage(chat.SpeakerUser, text))
	return c.copyLocked(), nil
}

// AppendAdvisorMessage records an advisor turn, real advice or a fallback sentinel alike.
func (c *Conversation) AppendAdvisorMessage(text string) []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, c.newMessage(chat.SpeakerAdvisor, text))
	return c.copyLocked()
}

// Snapshot returns a copy of the transcript in conversational order.
func (c *Conversation) Snapshot() []chat.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyLocked()
}

// Len reports the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

func (c *Conversation) copyLocked() []chat.Message {
	copied := make([]chat.Message, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// newMessage stamps a message; timestamps never go backwards even if the clock does.
func (c *Conversation) newMessage(speaker chat.Speaker, text string) chat.Message {
	createdAt := c.now().UTC()
	if n := len(c.messages); n > 0 && createdAt.Before(c.messages[n-1].CreatedAt) {
		createdAt = c.messages[n-1].CreatedAt
	}
	return chat.Message{
		ID:        c.newID(),
		Speaker:   speaker,
		Text:      text,
		CreatedAt: createdAt,
	}
}
