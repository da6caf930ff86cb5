// Package tui provides an interactive terminal shell for pdfdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Images lists folders and converts them to PDF.
	Images driving.ImageService

	// Security encrypts and decrypts documents.
	Security driving.SecurityService

	// Extract renders pages to image files.
	Extract driving.ExtractService

	// History lists past operations. Optional.
	History driving.HistoryService

	// Actions opens outputs in the default application. Optional.
	Actions driving.ActionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Images == nil {
		return ErrMissingImageService
	}
	if p.Security == nil {
		return ErrMissingSecurityService
	}
	if p.Extract == nil {
		return ErrMissingExtractService
	}
	return nil
}
