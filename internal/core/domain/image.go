package domain

import (
	"path/filepath"
	"strings"
)

// imageExtensions is the allow-list for the image enumerator.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsImageFile reports whether the file name has a supported image extension.
// Matching is case-insensitive.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ImageExtensions returns the supported extensions.
func ImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// ImageRef is an image file selected for composition.
type ImageRef struct {
	// Path is the file path as found in the folder.
	Path string
}

// Name returns the file name without directory.
func (r ImageRef) Name() string {
	return filepath.Base(r.Path)
}

// Raster is a decoded image ready to embed in a page.
type Raster struct {
	// Width and Height are pixel dimensions.
	Width  int
	Height int

	// JPEG holds the image encoded as an RGB JPEG.
	JPEG []byte

	// Converted is true if the source pixel format had to be converted to RGB.
	Converted bool
}
