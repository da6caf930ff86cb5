package driven

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// HistoryStore persists operation history.
type HistoryStore interface {
	// Record stores an entry. Entries with an existing ID are replaced.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// Get returns an entry by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// List returns up to limit entries, most recent first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Prune keeps only the most recent keep entries.
	Prune(ctx context.Context, keep int) error

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
