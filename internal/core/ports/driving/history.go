package driving

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// HistoryService exposes the record of past operations.
type HistoryService interface {
	// List returns up to limit entries, most recent first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Get returns one entry.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
