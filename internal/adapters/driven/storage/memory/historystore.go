package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// History recorded here lasts for the process only.
type HistoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		entries: make(map[string]domain.HistoryEntry),
	}
}

// Record stores or replaces an entry.
func (s *HistoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	if entry.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Inputs = append([]string(nil), entry.Inputs...)
	s.entries[entry.ID] = entry
	return nil
}

// Get retrieves an entry by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns up to limit entries, most recent first. A limit of 0 returns all.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sorted := s.sorted()
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Prune keeps only the most recent keep entries.
func (s *HistoryStore) Prune(_ context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sorted := s.sorted()
	for i := keep; i < len(sorted); i++ {
		delete(s.entries, sorted[i].ID)
	}
	return nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.HistoryEntry)
	return nil
}

// sorted returns entries newest first (caller must hold lock).
func (s *HistoryStore) sorted() []domain.HistoryEntry {
	result := make([]domain.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	return result
}
