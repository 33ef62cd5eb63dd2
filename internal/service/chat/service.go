package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/metrics"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/chat"
)

var (
	ErrSessionIDRequired = errors.New("session id is required")
	ErrSessionNotFound   = errors.New("session not found")
)

// Store persists one transcript per session. Unknown sessions read as an
// empty transcript. Concurrent Puts on the same session are last-write-wins.
type Store interface {
	Get(ctx context.Context, sessionID string) (chat.Transcript, error)
	Put(ctx context.Context, sessionID string, transcript chat.Transcript) error
}

// Service keeps sessions and transcripts in memory. It is lost on restart
// and not shared between instances.
type Service struct {
	mu          sync.RWMutex
	sessions    map[string]chat.Session
	transcripts map[string]chat.Transcript
	now         func() time.Time
}

var _ Store = (*Service)(nil)

// NewService bootstraps the in-memory session store.
func NewService() *Service {
	return &Service{
		sessions:    make(map[string]chat.Session),
		transcripts: make(map[string]chat.Transcript),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession provisions an anonymous session with an empty transcript.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	now := s.now()
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.transcripts[session.ID] = chat.Transcript{}
	s.updateGaugeLocked()
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Get returns a copy of the session transcript. First contact yields an
// empty transcript.
func (s *Service) Get(_ context.Context, sessionID string) (chat.Transcript, error) {
	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcripts[sessionID].Clone(), nil
}

// Put replaces the session transcript, creating the session on first write.
func (s *Service) Put(_ context.Context, sessionID string, transcript chat.Transcript) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = chat.Session{ID: sessionID, CreatedAt: now}
	}
	session.UpdatedAt = now
	s.sessions[sessionID] = session
	s.transcripts[sessionID] = transcript.Clone()
	s.updateGaugeLocked()
	return nil
}

// LoadTranscript returns the transcript of an existing session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) (chat.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}
	return s.transcripts[sessionID].Clone(), nil
}

// PruneIdle drops sessions untouched for longer than maxIdle and reports how
// many were removed.
func (s *Service) PruneIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			delete(s.transcripts, id)
			removed++
		}
	}
	s.updateGaugeLocked()
	return removed
}

// Len reports the number of sessions held.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) updateGaugeLocked() {
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
