package driving

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// ImageService turns folders of images into PDFs.
type ImageService interface {
	// ListImages returns the supported images in a folder, sorted by path.
	ListImages(ctx context.Context, dir string) ([]domain.ImageRef, error)

	// Convert places every image of the folder on its own page and writes
	// the document. Unreadable images are skipped and reported in the result.
	Convert(ctx context.Context, req domain.ConvertRequest) (*domain.Result, error)
}

// WatchService rebuilds a PDF whenever the images of its folder change.
type WatchService interface {
	// Watch runs Convert once and again after every change until ctx is
	// cancelled. onResult receives each run's result.
	Watch(ctx context.Context, req domain.ConvertRequest, onResult func(*domain.Result, error)) error
}
