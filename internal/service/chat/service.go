package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRequestInFlight = errors.New("an advice request is already in flight for this session")
)

// Adviser produces one advisor reply for a prior transcript and a new utterance.
type Adviser interface {
	RequestAdvice(ctx context.Context, transcript []chat.Message, contextSummary, utterance string) advice.Reply
}

// Exchange is the result of one user turn.
type Exchange struct {
	Question chat.Message
	Answer   chat.Message
	// Err is the typed failure behind a fallback answer, nil for real advice.
	Err error
}

// Fallback reports whether Answer holds a sentinel instead of generated advice.
func (e Exchange) Fallback() bool {
	return e.Err != nil
}

type sessionEntry struct {
	session      chat.Session
	conversation *Conversation
}

// Service owns every session's conversation and runs the advice exchange.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	adviser        Adviser
	greeting       string
	defaultProfile func() learner.Profile
	convOpts       []ConversationOption
	log            logrus.FieldLogger
}

// Option customises a Service.
type Option func(*Service)

// WithGreeting sets the advisor message every transcript starts with.
func WithGreeting(greeting string) Option {
	return func(s *Service) { s.greeting = greeting }
}

// WithDefaultProfile sets the profile used when a session is created without one.
func WithDefaultProfile(profile func() learner.Profile) Option {
	return func(s *Service) { s.defaultProfile = profile }
}

// WithConversationOptions passes options to every new conversation.
func WithConversationOptions(opts ...ConversationOption) Option {
	return func(s *Service) { s.convOpts = append(s.convOpts, opts...) }
}

// WithLogger sets the service logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

// NewService bootstraps the in-memory chat service.
func NewService(adviser Adviser, opts ...Option) *Service {
	s := &Service{
		sessions:       make(map[string]*sessionEntry),
		adviser:        adviser,
		defaultProfile: func() learner.Profile { return learner.Profile{} },
		log:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession starts a conversation for profile, or for the default profile when nil.
func (s *Service) CreateSession(_ context.Context, profile *learner.Profile) (chat.Session, []chat.Message, error) {
	p := s.defaultProfile()
	if profile != nil {
		p = profile.Clone()
	}
	if err := p.Validate(); err != nil {
		return chat.Session{}, nil, err
	}

	session := chat.Session{
		ID:        uuid.NewString(),
		Profile:   p,
		CreatedAt: time.Now().UTC(),
	}
	conversation := NewConversation(s.greeting, s.convOpts...)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session, conversation: conversation}
	s.mu.Unlock()

	s.log.WithField("session", session.ID).Info("[chat] session created")
	return session, conversation.Snapshot(), nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	session := entry.session
	session.Profile = session.Profile.Clone()
	return session, nil
}

// UpdateProfile replaces the learner profile; later advice uses the new context.
func (s *Service) UpdateProfile(_ context.Context, sessionID string, profile learner.Profile) (chat.Session, error) {
	if err := profile.Validate(); err != nil {
		return chat.Session{}, err
	}

	entry, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	s.mu.Lock()
	entry.session.Profile = profile.Clone()
	session := entry.session
	s.mu.Unlock()

	session.Profile = session.Profile.Clone()
	return session, nil
}

// LoadTranscript returns a snapshot of the session's messages.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return entry.conversation.Snapshot(), nil
}

// Ask records a user turn, requests advice and records the advisor turn.
// A second Ask on the same session while one is pending fails with ErrRequestInFlight.
// Once started, the remote call is not cancelled by ctx so the advisor turn is always recorded.
func (s *Service) Ask(ctx context.Context, sessionID, text string) (Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, ErrInvalidInput
	}

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Exchange{}, err
	}

	conversation := entry.conversation
	if !conversation.inflight.TryAcquire(1) {
		return Exchange{}, ErrRequestInFlight
	}
	defer conversation.inflight.Release(1)

	prior := conversation.Snapshot()
	afterUser, err := conversation.AppendUserMessage(text)
	if err != nil {
		return Exchange{}, err
	}

	s.mu.RLock()
	summary := learner.Summarize(entry.session.Profile)
	s.mu.RUnlock()

	reply := s.adviser.RequestAdvice(context.WithoutCancel(ctx), prior, summary, text)
	afterAdvisor := conversation.AppendAdvisorMessage(reply.Text)

	log := s.log.WithFields(logrus.Fields{"session": sessionID, "messages": len(afterAdvisor)})
	if reply.Err != nil {
		log.WithError(reply.Err).Warn("[chat] advisor fallback delivered")
	} else {
		log.Debug("[chat] advisor reply delivered")
	}

	return Exchange{
		Question: afterUser[len(afterUser)-1],
		Answer:   afterAdvisor[len(afterAdvisor)-1],
		Err:      reply.Err,
	}, nil
}

func (s *Service) lookup(sessionID string) (*sessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}
