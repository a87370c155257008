package breaker

import (
	"context"
	"sync"
	"time"
)

// State is the persisted snapshot of a Circuit: everything needed to
// resume it elsewhere, or after a restart, without losing the current
// window.
type State struct {
	CircuitState           CircuitState
	Buckets                []bucket
	LastFailureTime        *time.Time
	LastSuccessTime        *time.Time
	HalfOpenSuccesses      int
	HalfOpenActiveRequests int
}

func (s State) clone() State {
	out := s
	if len(s.Buckets) > 0 {
		out.Buckets = make([]bucket, len(s.Buckets))
		copy(out.Buckets, s.Buckets)
	}
	if s.LastFailureTime != nil {
		t := *s.LastFailureTime
		out.LastFailureTime = &t
	}
	if s.LastSuccessTime != nil {
		t := *s.LastSuccessTime
		out.LastSuccessTime = &t
	}
	return out
}

// StateStore persists Circuit state out-of-process, keyed by circuit name.
// Implementations must deep-copy on both GetState and SetState so that
// mutations to a caller's copy never bleed into the stored value, and vice
// versa.
type StateStore interface {
	GetState(ctx context.Context, circuitID string) (*State, error)
	SetState(ctx context.Context, circuitID string, state State) error
	DeleteState(ctx context.Context, circuitID string) error
}

// MemoryStore is the required in-memory StateStore implementation. It is
// safe for concurrent use.
type MemoryStore struct {
	m sync.Map // circuitID -> State
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// GetState returns a deep copy of the stored state, or nil if none exists.
func (s *MemoryStore) GetState(_ context.Context, circuitID string) (*State, error) {
	v, ok := s.m.Load(circuitID)
	if !ok {
		return nil, nil
	}
	stored := v.(State).clone()
	return &stored, nil
}

// SetState stores a deep copy of state under circuitID.
func (s *MemoryStore) SetState(_ context.Context, circuitID string, state State) error {
	s.m.Store(circuitID, state.clone())
	return nil
}

// DeleteState removes any stored state for circuitID. Deleting an absent
// key is not an error.
func (s *MemoryStore) DeleteState(_ context.Context, circuitID string) error {
	s.m.Delete(circuitID)
	return nil
}
