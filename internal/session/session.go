// Package session keeps per-user conversation state. The state lives
// outside the durable store: either in process memory or in Redis, selected
// by configuration.
package session

import (
	"context"
	"sync"
	"time"
)

// State is the transient step pointer plus the partial form payload
// accumulated so far.
type State struct {
	Step      string    `json:"step"`
	Name      string    `json:"name,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the conversation-state backend. Get returns nil for users with
// no active conversation.
type Store interface {
	Get(ctx context.Context, userID int64) (*State, error)
	Put(ctx context.Context, userID int64, state *State) error
	Clear(ctx context.Context, userID int64) error
}

// MemoryStore keeps states in a mutex-guarded map.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[int64]*State),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil, nil
	}

	copied := *state
	return &copied, nil
}

func (s *MemoryStore) Put(_ context.Context, userID int64, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *state
	copied.UpdatedAt = time.Now()
	s.states[userID] = &copied

	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)

	return nil
}

// Sweep evicts states idle longer than maxIdle and reports how many were
// removed. Redis handles this through TTLs; the memory backend needs the
// periodic job.
func (s *MemoryStore) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, state := range s.states {
		if state.UpdatedAt.Before(cutoff) {
			delete(s.states, userID)
			removed++
		}
	}

	return removed
}
