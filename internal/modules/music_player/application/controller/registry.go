package controller

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Registry tracks active sessions by the message they are bound to.
type Registry struct {
	mu       sync.RWMutex
	sessions map[snowflake.ID]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[snowflake.ID]*Session),
	}
}

// Put binds s to its message. A session already bound to the same message
// is abandoned so that only one session ever drives a message.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	old := r.sessions[s.MessageID()]
	r.sessions[s.MessageID()] = s
	r.mu.Unlock()

	if old != nil && old != s {
		old.abandon()
	}
}

// Get returns the session bound to the message.
func (r *Registry) Get(messageID snowflake.ID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[messageID]
	return s, ok
}

// Remove unbinds s if it is still the session bound to its message.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[s.MessageID()] == s {
		delete(r.sessions, s.MessageID())
	}
}

// Len returns the number of bound sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
