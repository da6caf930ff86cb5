package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// Ensure ImageService implements the interfaces.
var (
	_ driving.ImageService = (*ImageService)(nil)
	_ driving.WatchService = (*ImageService)(nil)
)

// ImageService converts folders of images into PDFs.
type ImageService struct {
	images   driven.ImageSource
	composer driven.DocumentComposer
	watcher  driven.FolderWatcher
	settings settingsSource
	history  recorder
}

// NewImageService creates a new image service.
// The settings and history parameters are optional (can be nil).
func NewImageService(
	images driven.ImageSource,
	composer driven.DocumentComposer,
	settings settingsSource,
	history recorder,
) *ImageService {
	return &ImageService{
		images:   images,
		composer: composer,
		settings: settings,
		history:  history,
	}
}

// SetWatcher sets the folder watcher used by Watch.
func (s *ImageService) SetWatcher(w driven.FolderWatcher) {
	s.watcher = w
}

// ListImages returns the supported images in a folder, sorted by path.
func (s *ImageService) ListImages(ctx context.Context, dir string) ([]domain.ImageRef, error) {
	if s.images == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(dir) == "" {
		return nil, domain.NewOpError(domain.OpConvert, domain.KindInput, "", domain.ErrNoFolderSelected)
	}
	refs, err := s.images.List(ctx, dir)
	if err != nil {
		logger.Warn("cannot list images in %s: %v", dir, err)
		return nil, err
	}
	logger.Debug("found %d images in %s", len(refs), dir)
	return refs, nil
}

// Convert places every image of the folder on its own page and writes
// the document. Unreadable images are skipped and reported in the result.
func (s *ImageService) Convert(ctx context.Context, req domain.ConvertRequest) (*domain.Result, error) {
	result := newResult(domain.OpConvert, req.Output, req.Folder)
	defer s.record(ctx, result)

	if s.images == nil || s.composer == nil {
		return result, result.Fail(domain.ErrNotImplemented)
	}
	if strings.TrimSpace(req.Folder) == "" {
		return result, result.Fail(domain.NewOpError(domain.OpConvert, domain.KindInput, "", domain.ErrNoFolderSelected))
	}
	if strings.TrimSpace(req.Output) == "" {
		return result, result.Fail(domain.NewOpError(domain.OpConvert, domain.KindInput, "",
			fmt.Errorf("%w: output path is required", domain.ErrInvalidInput)))
	}

	settings := loadSettings(s.settings)
	if req.PageSize != "" {
		settings.Page.Size = req.PageSize
	}
	if req.Orientation != "" {
		settings.Page.Orientation = req.Orientation
	}
	page, err := settings.Page.Dimensions()
	if err != nil {
		return result, result.Fail(domain.NewOpError(domain.OpConvert, domain.KindInput, "", err))
	}

	refs, err := s.ListImages(ctx, req.Folder)
	if err != nil {
		return result, result.Fail(err)
	}
	if len(refs) == 0 {
		logger.Warn("no images found in %s", req.Folder)
		return result, result.Fail(domain.NewOpError(domain.OpConvert, domain.KindInput, req.Folder, domain.ErrNoImages))
	}

	doc := s.composer.New(page)
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return result, result.Fail(err)
		}
		if err := s.addPage(ctx, doc, ref, page, settings.Compose.JPEGQuality); err != nil {
			logger.Warn("skipping %s: %v", ref.Path, err)
			result.Skip(ref.Path, err)
			continue
		}
		logger.Debug("added page %d from %s", doc.PageCount(), ref.Name())
	}

	if doc.PageCount() == 0 {
		return result, result.Fail(domain.NewOpError(domain.OpConvert, domain.KindItem, req.Folder, domain.ErrNoPages))
	}

	if err := doc.Save(req.Output); err != nil {
		logger.Error("failed to write %s: %v", req.Output, err)
		return result, result.Fail(domain.NewOpError(domain.OpConvert, domain.KindWrite, req.Output, err))
	}

	result.Pages = doc.PageCount()
	result.Files = []string{req.Output}
	result.Finish()
	logger.Info("wrote %d pages to %s", result.Pages, req.Output)
	return result, nil
}

// addPage loads one image, fits it to the page and appends it.
func (s *ImageService) addPage(
	ctx context.Context,
	doc driven.PageDocument,
	ref domain.ImageRef,
	page domain.PageSize,
	quality int,
) error {
	raster, err := s.images.Load(ctx, ref, quality)
	if err != nil {
		return err
	}
	if raster.Converted {
		logger.Debug("converted %s to RGB", ref.Name())
	}
	placement, err := domain.Fit(raster.Width, raster.Height, page)
	if err != nil {
		return err
	}
	return doc.AddImagePage(ref.Path, raster, placement)
}

// Watch runs Convert once and again after every change until ctx is cancelled.
// A failed rebuild leaves the last good output in place and says so in a warning.
func (s *ImageService) Watch(
	ctx context.Context,
	req domain.ConvertRequest,
	onResult func(*domain.Result, error),
) error {
	if s.watcher == nil {
		return domain.ErrNotImplemented
	}
	if onResult == nil {
		onResult = func(*domain.Result, error) {}
	}

	var built bool
	build := func() {
		result, err := s.Convert(ctx, req)
		if err == nil {
			built = true
		} else if built && result != nil {
			result.Warn(fmt.Sprintf("%s was not updated and still holds the previous build", req.Output))
		}
		onResult(result, err)
	}

	build()

	err := s.watcher.Watch(ctx, req.Folder, func() {
		logger.Debug("change detected in %s", req.Folder)
		build()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *ImageService) record(ctx context.Context, result *domain.Result) {
	if s.history != nil {
		s.history.Record(context.WithoutCancel(ctx), result)
	}
}
