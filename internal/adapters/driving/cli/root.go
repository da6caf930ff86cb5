// Package cli provides the pdfdesk command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	noHistory bool
)

// Services configured for the current run.
var (
	imageService    driving.ImageService
	watchService    driving.WatchService
	securityService driving.SecurityService
	extractService  driving.ExtractService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	actionService   driving.ActionService
	closeServices   func() error
)

// Services holds the driving ports the commands use.
type Services struct {
	Images   driving.ImageService
	Watch    driving.WatchService
	Security driving.SecurityService
	Extract  driving.ExtractService
	History  driving.HistoryService
	Settings driving.SettingsService
	Actions  driving.ActionService

	// Close releases resources held by the services. Optional.
	Close func() error
}

// Options are the global flags that shape how services are built.
type Options struct {
	ConfigDir string
	NoHistory bool
}

// ServiceFactory builds the services for one run.
type ServiceFactory func(opts Options) (*Services, error)

var serviceFactory ServiceFactory

var rootCmd = &cobra.Command{
	Use:   "pdfdesk",
	Short: "Convert images to PDF, protect PDFs and render their pages",
	Long: `pdfdesk is a small PDF workbench.

It combines a folder of images into one PDF (one centred page per image),
encrypts and decrypts PDFs with a password, and renders every page of a
PDF to image_<n>.jpg files.

Run without arguments, or with 'pdfdesk tui', for the interactive shell.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress details")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.pdfdesk)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history")
}

// SetServices sets the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	imageService = s.Images
	watchService = s.Watch
	securityService = s.Security
	extractService = s.Extract
	historyService = s.History
	settingsService = s.Settings
	actionService = s.Actions
	closeServices = s.Close
}

// SetServiceFactory sets the function that builds services once the
// global flags are parsed.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if closeErr := closeServices(); closeErr != nil {
			logger.Warn("failed to release resources: %v", closeErr)
		}
	}
	return err
}

// setup applies global flags and builds services.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if serviceFactory == nil {
		return nil
	}

	services, err := serviceFactory(Options{ConfigDir: configDir, NoHistory: noHistory})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfdesk: %w", err)
	}
	SetServices(services)
	return nil
}
