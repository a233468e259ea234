package httpapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/deckforge/internal/ports/primary"
)

// session is one open editor bound to the player who opened it.
type session struct {
	id       string
	playerID string
	editor   primary.DeckEditor
	lastUsed time.Time
}

// SessionStore keeps open editors keyed by a random session ID.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store that forgets sessions idle for longer than
// ttl. A zero ttl keeps sessions until they are closed.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: map[string]*session{},
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open registers an editor and returns its session ID.
func (s *SessionStore) Open(playerID string, editor primary.DeckEditor) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()
	id := uuid.NewString()
	s.sessions[id] = &session{id: id, playerID: playerID, editor: editor, lastUsed: s.now()}
	return id
}

// Get returns the editor for a session opened by playerID. Sessions of other
// players are reported as missing.
func (s *SessionStore) Get(id, playerID string) (primary.DeckEditor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()
	sess, ok := s.sessions[id]
	if !ok || sess.playerID != playerID {
		return nil, false
	}
	sess.lastUsed = s.now()
	return sess.editor, true
}

// Close forgets a session. It reports whether the session existed.
func (s *SessionStore) Close(id, playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.playerID != playerID {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len returns the number of open sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) evictLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
