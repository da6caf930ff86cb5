package domain

import "fmt"

const unknownDescription = "Unknown"

// RenderFormat is the image format written by the rasterizer.
type RenderFormat string

// Available render formats.
const (
	RenderFormatJPEG RenderFormat = "jpeg"
	RenderFormatPNG  RenderFormat = "png"
)

// IsValid returns true if the format is recognised.
func (f RenderFormat) IsValid() bool {
	return f == RenderFormatJPEG || f == RenderFormatPNG
}

// Extension returns the file extension written for this format.
func (f RenderFormat) Extension() string {
	if f == RenderFormatPNG {
		return ".png"
	}
	return ".jpg"
}

// String returns the string representation.
func (f RenderFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f RenderFormat) Description() string {
	switch f {
	case RenderFormatJPEG:
		return "JPEG (image_<n>.jpg)"
	case RenderFormatPNG:
		return "PNG (image_<n>.png)"
	default:
		return unknownDescription
	}
}

// PageSettings controls the pages produced by image-to-PDF conversion.
type PageSettings struct {
	// Size is a named page size (A3, A4, A5, Letter, Legal).
	Size string

	// Orientation is portrait or landscape.
	Orientation Orientation
}

// Dimensions resolves the page size in millimetres.
func (p PageSettings) Dimensions() (PageSize, error) {
	return LookupPageSize(p.Size, p.Orientation)
}

// ComposeSettings controls how images are embedded.
type ComposeSettings struct {
	// JPEGQuality is the quality (1-100) used when embedding images.
	JPEGQuality int
}

// RenderSettings controls the external rasterizer.
type RenderSettings struct {
	// Binary is the path to pdftoppm. Empty means look it up on PATH.
	Binary string

	// DPI is the render resolution.
	DPI int

	// Format is the output image format.
	Format RenderFormat
}

// SecuritySettings controls encryption.
type SecuritySettings struct {
	// KeyLength is the AES key length in bits (128 or 256).
	KeyLength int
}

// HistorySettings controls the operation history.
type HistorySettings struct {
	// Enabled records every operation result.
	Enabled bool

	// Keep is the number of entries retained.
	Keep int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Page     PageSettings
	Compose  ComposeSettings
	Render   RenderSettings
	Security SecuritySettings
	History  HistorySettings
}

// DefaultAppSettings returns settings matching the classic behaviour:
// A4 portrait pages, JPEG page images, AES-256.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Page: PageSettings{
			Size:        "A4",
			Orientation: OrientationPortrait,
		},
		Compose: ComposeSettings{
			JPEGQuality: 90,
		},
		Render: RenderSettings{
			DPI:    150,
			Format: RenderFormatJPEG,
		},
		Security: SecuritySettings{
			KeyLength: 256,
		},
		History: HistorySettings{
			Enabled: true,
			Keep:    200,
		},
	}
}

// Validate checks every setting is within range.
func (s AppSettings) Validate() error {
	if !s.Page.Orientation.IsValid() {
		return fmt.Errorf("%w: orientation %q", ErrInvalidInput, s.Page.Orientation)
	}
	if _, err := s.Page.Dimensions(); err != nil {
		return err
	}
	if s.Compose.JPEGQuality < 1 || s.Compose.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality %d not in 1-100", ErrInvalidInput, s.Compose.JPEGQuality)
	}
	if s.Render.DPI < 36 || s.Render.DPI > 1200 {
		return fmt.Errorf("%w: dpi %d not in 36-1200", ErrInvalidInput, s.Render.DPI)
	}
	if !s.Render.Format.IsValid() {
		return fmt.Errorf("%w: render format %q", ErrUnsupportedFormat, s.Render.Format)
	}
	if !ValidKeyLength(s.Security.KeyLength) {
		return fmt.Errorf("%w: key length %d", ErrInvalidInput, s.Security.KeyLength)
	}
	if s.History.Keep < 0 {
		return fmt.Errorf("%w: history keep %d", ErrInvalidInput, s.History.Keep)
	}
	return nil
}

// ValidKeyLength returns true for supported AES key lengths.
func ValidKeyLength(bits int) bool {
	return bits == 128 || bits == 256
}

// AllRenderFormats returns all available render formats.
func AllRenderFormats() []RenderFormat {
	return []RenderFormat{RenderFormatJPEG, RenderFormatPNG}
}
