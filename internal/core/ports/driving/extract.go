package driving

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// ExtractService writes the pages of a PDF as image files.
type ExtractService interface {
	// Extract renders every page (or pulls embedded images) into the
	// output directory, creating it if needed.
	Extract(ctx context.Context, req domain.ExtractRequest) (*domain.Result, error)

	// RendererStatus returns nil if the page renderer is available.
	RendererStatus() error
}
