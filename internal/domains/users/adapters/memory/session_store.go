package memory

import (
	"context"
	"sync"
	"time"

	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
)

var _ userports.SessionStore = (*SessionStore)(nil)

type session struct {
	userID    int64
	expiresAt time.Time
}

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]session{}, now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, userID int64, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenID] = session{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *SessionStore) Active(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenID]
	if !ok {
		return false, nil
	}
	if !sess.expiresAt.After(s.now()) {
		delete(s.sessions, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *SessionStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.userID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}
