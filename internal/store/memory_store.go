package store

import (
	"context"
	"sync"
)

// MemoryStore keeps state for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: State{}.Clone()}
}

// Load returns a copy of the stored state.
func (s *MemoryStore) Load(ctx context.Context) (State, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

// Save replaces the stored state with a copy of state.
func (s *MemoryStore) Save(ctx context.Context, state State) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
