// Package settings implements the optimistic-update synchronizer used for
// caption display settings: the new value becomes visible locally before the
// remote persist completes, and is rolled back if the persist fails.
package settings

import (
	"context"
	"errors"
	"sync"
)

// ErrUpdateInFlight is returned when an update starts while another one is
// still pending. Callers treat it as "busy" and may retry; updates are never
// queued.
var ErrUpdateInFlight = errors.New("settings update already in flight")

// PersistFunc stores the complete value remotely. It always receives the full
// object, never a partial diff.
type PersistFunc[T any] func(ctx context.Context, value T) error

// Synchronizer holds one observable value of type T and serializes updates to
// it with single-flight semantics. It is not tied to caption settings; any
// wholesale-mutated field group works.
type Synchronizer[T any] struct {
	mu       sync.Mutex
	inFlight bool
	current  T
}

// NewSynchronizer creates a synchronizer with the given initial value.
func NewSynchronizer[T any](initial T) *Synchronizer[T] {
	return &Synchronizer[T]{current: initial}
}

// Current returns the value currently visible to observers. During an update
// this is already the tentative new value.
func (s *Synchronizer[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Replace overwrites the local value without persisting, used when the remote
// document changes underneath us (another session wrote it).
func (s *Synchronizer[T]) Replace(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = value
}

// Apply performs one optimistic update: snapshot the current value, make next
// visible immediately, persist the full object, and on failure restore the
// snapshot and return the persist error. A second Apply while one is pending
// returns ErrUpdateInFlight without touching state.
func (s *Synchronizer[T]) Apply(ctx context.Context, next T, persist PersistFunc[T]) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrUpdateInFlight
	}
	s.inFlight = true
	snapshot := s.current
	s.current = next
	s.mu.Unlock()

	err := persist(ctx, next)

	s.mu.Lock()
	if err != nil {
		s.current = snapshot
	}
	s.inFlight = false
	s.mu.Unlock()
	return err
}
