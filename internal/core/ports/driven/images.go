package driven

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// ImageSource finds and loads the images of a folder.
type ImageSource interface {
	// List returns the supported images directly inside dir, sorted by path.
	// Subdirectories are not descended into.
	List(ctx context.Context, dir string) ([]domain.ImageRef, error)

	// Load decodes an image, converts it to RGB if needed and encodes it
	// as an in-memory JPEG at the given quality.
	Load(ctx context.Context, ref domain.ImageRef, quality int) (*domain.Raster, error)
}

// FolderWatcher reports changes to the images of a folder.
type FolderWatcher interface {
	// Watch calls onChange after supported image files in dir are created,
	// written, removed or renamed. Bursts of events are coalesced.
	// Blocks until ctx is cancelled.
	Watch(ctx context.Context, dir string, onChange func()) error
}
