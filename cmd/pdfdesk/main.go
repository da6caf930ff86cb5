// Command pdfdesk converts images to PDF, encrypts and decrypts PDFs and
// renders PDF pages to images.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/imagefs"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/pdf/gofpdf"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/pdf/pdfcpu"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/render/poppler"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/watch"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/core/services"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

func main() {
	cli.SetServiceFactory(buildServices)
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the driven adapters into the core services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("using default settings: %v", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	store, closeStore, err := openHistory(opts, settings)
	if err != nil {
		return nil, err
	}
	historyService := services.NewHistoryService(store, settingsService)

	docs := pdfcpu.NewSecurity()
	imageService := services.NewImageService(imagefs.NewSource(), gofpdf.NewComposer(), settingsService, historyService)
	imageService.SetWatcher(watch.New(watch.DefaultDebounce))

	renderer := poppler.New(settings.Render.Binary)
	logger.Debug("page renderer: %s", renderer.Binary())

	return &cli.Services{
		Images:   imageService,
		Watch:    imageService,
		Security: services.NewSecurityService(docs, settingsService, historyService),
		Extract: services.NewExtractService(
			docs, renderer, pdfcpu.NewImageExtractor(), settingsService, historyService,
		),
		History:  historyService,
		Settings: settingsService,
		Actions:  services.NewActionService(),
		Close:    closeStore,
	}, nil
}

// openHistory opens the persistent history, or an in-memory one when
// history is off for this run or in the settings.
func openHistory(opts cli.Options, settings *domain.AppSettings) (driven.HistoryStore, func() error, error) {
	if opts.NoHistory || !settings.History.Enabled {
		return memory.NewHistoryStore(), nil, nil
	}

	dataDir := ""
	if opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	return store, store.Close, nil
}
