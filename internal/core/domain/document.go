package domain

import "strconv"

// DocumentInfo describes an opened PDF.
type DocumentInfo struct {
	// Path is the file the information was read from.
	Path string

	// Pages is the page count.
	Pages int

	// Encrypted is true if the document is password protected.
	Encrypted bool
}

// RenderOptions controls rasterization of one page.
type RenderOptions struct {
	DPI     int
	Format  RenderFormat
	Quality int

	// Password unlocks a protected source. Optional.
	Password string
}

// PageImageBase returns the output file name, without extension, for a
// 1-based page index.
func PageImageBase(page int) string {
	return "image_" + strconv.Itoa(page)
}

// PageImageName returns the output file name for a 1-based page index.
func PageImageName(page int, format RenderFormat) string {
	return PageImageBase(page) + format.Extension()
}
