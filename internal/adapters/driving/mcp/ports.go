package mcp

import (
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Images lists folders and converts them to PDF.
	Images driving.ImageService

	// Security encrypts and decrypts documents.
	Security driving.SecurityService

	// Extract rasterizes pages.
	Extract driving.ExtractService

	// History lists past operations.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Images == nil {
		return ErrMissingImageService
	}
	// The remaining ports are optional; their tools report unavailability.
	return nil
}
