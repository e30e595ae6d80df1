// Package session keeps bounded per-session conversation history.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const defaultMaxHistory = 2

type exchange struct {
	user      string
	assistant string
}

// Store is an in-memory session store. History is bounded to the most
// recent maxHistory exchanges per session; the oldest exchange is evicted
// first. Safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	maxHistory int
	sessions   map[string][]exchange
}

// NewStore creates a session store retaining up to maxHistory exchanges per
// session.
func NewStore(maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	return &Store{
		maxHistory: maxHistory,
		sessions:   make(map[string][]exchange),
	}
}

// CreateSession allocates a fresh session with empty history and returns
// its id.
func (s *Store) CreateSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = nil
	return id
}

// AddExchange appends one completed user/assistant exchange. Unknown ids
// are created implicitly. The oldest exchange is evicted once the retention
// window is exceeded.
func (s *Store) AddExchange(id, userMessage, assistantMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[id], exchange{user: userMessage, assistant: assistantMessage})
	if len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}
	s.sessions[id] = history
}

// History renders the retained exchanges as conversational context, oldest
// first. Unknown ids yield an empty string rather than an error.
func (s *Store) History(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[id]
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	for i, ex := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User: %s\nAssistant: %s", ex.user, ex.assistant)
	}
	return b.String()
}

// Exists reports whether the store is tracking the session id.
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// Clear drops all history for the session id. Idempotent at the store
// level; callers that need not-found semantics check Exists first.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
