package driven

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// Rasterizer renders PDF pages to image files using an external renderer.
type Rasterizer interface {
	// CheckAvailable returns domain.ErrRendererNotFound if the renderer
	// cannot be located.
	CheckAvailable() error

	// RenderPage renders the 1-based page of src to dstBase plus the
	// format's extension and returns the written path.
	RenderPage(ctx context.Context, src string, page int, dstBase string, opts domain.RenderOptions) (string, error)
}
