package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads and records operation history.
type HistoryService struct {
	store    driven.HistoryStore
	settings settingsSource
}

// NewHistoryService creates a new history service.
// A nil store disables history.
func NewHistoryService(store driven.HistoryStore, settings settingsSource) *HistoryService {
	return &HistoryService{store: store, settings: settings}
}

// List returns up to limit entries, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit < 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.store.List(ctx, limit)
}

// Get returns one entry.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// Clear removes all entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear(ctx)
}

// Record stores a finished result and prunes old entries.
// Failures are logged, never returned: history must not change an operation's outcome.
func (s *HistoryService) Record(ctx context.Context, result *domain.Result) {
	if s == nil || s.store == nil || result == nil {
		return
	}

	keep := domain.DefaultAppSettings().History.Keep
	if s.settings != nil {
		settings, err := s.settings.Get()
		if err == nil {
			if !settings.History.Enabled {
				return
			}
			keep = settings.History.Keep
		}
	}

	if err := s.store.Record(ctx, domain.NewHistoryEntry(result)); err != nil {
		logger.Warn("failed to record %s history: %v", result.Operation, err)
		return
	}
	if keep > 0 {
		if err := s.store.Prune(ctx, keep); err != nil {
			logger.Warn("failed to prune history: %v", err)
		}
	}
}

// settingsSource provides current settings to services.
type settingsSource interface {
	Get() (*domain.AppSettings, error)
}

// recorder receives finished results.
type recorder interface {
	Record(ctx context.Context, result *domain.Result)
}

// newResult starts a result with a fresh ID.
func newResult(op domain.Operation, output string, inputs ...string) *domain.Result {
	return domain.NewResult(uuid.NewString(), op, output, inputs...)
}

// loadSettings returns current settings, falling back to defaults.
func loadSettings(src settingsSource) domain.AppSettings {
	if src != nil {
		settings, err := src.Get()
		if err == nil && settings != nil {
			return *settings
		}
		if err != nil {
			logger.Warn("failed to read settings, using defaults: %v", err)
		}
	}
	return domain.DefaultAppSettings()
}
