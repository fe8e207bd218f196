package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store backed by a mutex and a sorted slice.
// It backs tests and lets the simulation run without a configured database.
type MemoryStore struct {
	mu        sync.Mutex
	champions []Champion
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends c and keeps the slice sorted by (score DESC, play_time ASC,
// name ASC).
func (s *MemoryStore) Save(ctx context.Context, c Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.champions = append(s.champions, c)
	sort.SliceStable(s.champions, func(i, j int) bool {
		a, b := s.champions[i], s.champions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.PlayTimeS != b.PlayTimeS {
			return a.PlayTimeS < b.PlayTimeS
		}
		return a.Name < b.Name
	})
	return nil
}

// Top returns up to maxItems champions starting at offset start.
func (s *MemoryStore) Top(ctx context.Context, start, maxItems int) ([]Champion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if start >= len(s.champions) {
		return nil, nil
	}
	end := start + maxItems
	if end > len(s.champions) {
		end = len(s.champions)
	}
	out := make([]Champion, end-start)
	copy(out, s.champions[start:end])
	return out, nil
}

// Close is a no-op for MemoryStore.
func (s *MemoryStore) Close() error {
	return nil
}
