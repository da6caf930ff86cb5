package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// Ensure ExtractService implements the interface.
var _ driving.ExtractService = (*ExtractService)(nil)

// ExtractService writes the pages of a PDF as image files.
type ExtractService struct {
	docs       driven.DocumentSecurity
	rasterizer driven.Rasterizer
	extractor  driven.ImageExtractor
	settings   settingsSource
	history    recorder
}

// NewExtractService creates a new extract service.
// The extractor is optional; without it embedded extraction is unavailable.
func NewExtractService(
	docs driven.DocumentSecurity,
	rasterizer driven.Rasterizer,
	extractor driven.ImageExtractor,
	settings settingsSource,
	history recorder,
) *ExtractService {
	return &ExtractService{
		docs:       docs,
		rasterizer: rasterizer,
		extractor:  extractor,
		settings:   settings,
		history:    history,
	}
}

// RendererStatus returns nil if the page renderer is available.
func (s *ExtractService) RendererStatus() error {
	if s.rasterizer == nil {
		return domain.ErrRendererNotFound
	}
	return s.rasterizer.CheckAvailable()
}

// Extract renders every page (or pulls embedded images) into the output
// directory, creating it if needed.
func (s *ExtractService) Extract(ctx context.Context, req domain.ExtractRequest) (*domain.Result, error) {
	result := newResult(domain.OpExtract, req.OutputDir, req.Source)
	defer s.record(ctx, result)

	if s.docs == nil {
		return result, result.Fail(domain.ErrNotImplemented)
	}
	if strings.TrimSpace(req.Source) == "" {
		return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindInput, "",
			fmt.Errorf("%w: source path is required", domain.ErrInvalidInput)))
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindInput, "",
			fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)))
	}

	opts, err := s.renderOptions(req)
	if err != nil {
		return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindInput, "", err))
	}

	// Check the renderer before touching the filesystem.
	if !req.Embedded {
		if err := s.RendererStatus(); err != nil {
			logger.Error("pdf renderer unavailable: %v", err)
			return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindRenderer, "", err))
		}
	} else if s.extractor == nil {
		return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindInput, "",
			fmt.Errorf("%w: embedded extraction", domain.ErrNotImplemented)))
	}

	info, err := s.docs.Inspect(ctx, req.Source, req.Password)
	if err != nil {
		kind := domain.KindRead
		if errors.Is(err, domain.ErrWrongPassword) {
			kind = domain.KindAuthorization
		}
		logger.Warn("cannot open %s: %v", req.Source, err)
		return result, result.Fail(domain.NewOpError(domain.OpExtract, kind, req.Source, err))
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindWrite, req.OutputDir, err))
	}

	if req.Embedded {
		return s.extractEmbedded(ctx, req, result)
	}

	for page := 1; page <= info.Pages; page++ {
		if err := ctx.Err(); err != nil {
			return result, result.Fail(err)
		}
		base := filepath.Join(req.OutputDir, domain.PageImageBase(page))
		file, err := s.rasterizer.RenderPage(ctx, req.Source, page, base, opts)
		if err != nil {
			logger.Error("failed to render page %d of %s: %v", page, req.Source, err)
			return result, result.Fail(domain.NewOpError(domain.OpExtract, domain.KindRenderer, req.Source,
				fmt.Errorf("page %d: %w", page, err)))
		}
		result.Files = append(result.Files, file)
		logger.Debug("rendered page %d to %s", page, file)
	}

	result.Pages = info.Pages
	result.Finish()
	logger.Info("wrote %d page images to %s", len(result.Files), req.OutputDir)
	return result, nil
}

func (s *ExtractService) extractEmbedded(
	ctx context.Context,
	req domain.ExtractRequest,
	result *domain.Result,
) (*domain.Result, error) {
	files, err := s.extractor.ExtractImages(ctx, req.Source, req.OutputDir, req.Password)
	if err != nil {
		logger.Error("failed to extract images from %s: %v", req.Source, err)
		kind := domain.KindRead
		if errors.Is(err, domain.ErrWrongPassword) {
			kind = domain.KindAuthorization
		}
		return result, result.Fail(domain.NewOpError(domain.OpExtract, kind, req.Source, err))
	}
	if len(files) == 0 {
		result.Warn("document contains no embedded images")
	}
	result.Files = files
	result.Pages = len(files)
	result.Finish()
	logger.Info("wrote %d embedded images to %s", len(files), req.OutputDir)
	return result, nil
}

// renderOptions merges request overrides with settings.
func (s *ExtractService) renderOptions(req domain.ExtractRequest) (domain.RenderOptions, error) {
	settings := loadSettings(s.settings)
	opts := domain.RenderOptions{
		DPI:      settings.Render.DPI,
		Format:   settings.Render.Format,
		Quality:  settings.Compose.JPEGQuality,
		Password: req.Password,
	}
	if req.DPI != 0 {
		opts.DPI = req.DPI
	}
	if req.Format != "" {
		opts.Format = req.Format
	}
	if opts.DPI < 36 || opts.DPI > 1200 {
		return opts, fmt.Errorf("%w: dpi %d not in 36-1200", domain.ErrInvalidInput, opts.DPI)
	}
	if !opts.Format.IsValid() {
		return opts, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, opts.Format)
	}
	return opts, nil
}

func (s *ExtractService) record(ctx context.Context, result *domain.Result) {
	if s.history != nil {
		s.history.Record(context.WithoutCancel(ctx), result)
	}
}
