package memory

import (
	"context"
	"sync"

	"serfai/internal/app/ports"
)

// Store keeps journal entries per run. A TxManager holds the write lock for
// the whole transaction; repositories lock only outside one.
type Store struct {
	mu      sync.RWMutex
	journal map[string][]ports.JournalEntry
}

func NewStore() *Store {
	return &Store{
		journal: make(map[string][]ports.JournalEntry),
	}
}

type txKeyType struct{}

var txKey = txKeyType{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
